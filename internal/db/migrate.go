package db

import (
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Preference{},
		&model.QuizResult{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedCatalog(); err != nil {
		logger.Error("Failed to seed catalog during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedCatalog()
}

// seedCatalog inserts the storefront's purchasable entities: the three
// studio services and the lookbook furniture pieces.
func seedCatalog() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding product catalog...")

	products := []model.Product{
		{SKU: "srv_1", Title: "Interior Design", Kind: model.KindService, Price: 1500},
		{SKU: "srv_2", Title: "Furniture Set", Kind: model.KindService, Price: 3500},
		{SKU: "srv_3", Title: "Flooring Install", Kind: model.KindService, Price: 2200},
		{SKU: "lb_1", Title: "Artemide Table Lamp", Kind: model.KindFurniture, Price: 450},
		{SKU: "lb_2", Title: "Velvet Accent Chair", Kind: model.KindFurniture, Price: 1200},
		{SKU: "lb_3", Title: "Abstract Wall Art", Kind: model.KindFurniture, Price: 890},
		{SKU: "lb_4", Title: "Minimalist Coffee Table", Kind: model.KindFurniture, Price: 650},
	}

	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"sku": product.SKU,
			})
			return err
		}
	}

	logger.Info("Catalog seeded successfully", map[string]interface{}{
		"total_products": len(products),
	})
	return nil
}
