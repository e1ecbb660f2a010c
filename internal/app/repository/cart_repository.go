package repository

import (
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindBySession(sessionID string) ([]model.CartItem, error)
	FindBySessionAndSKU(sessionID, sku string) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
	DeleteBySessionAndSKU(sessionID, sku string) error
	DeleteBySession(sessionID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"session_id": cartItem.SessionID,
		"sku":        cartItem.SKU,
		"quantity":   cartItem.Quantity,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"session_id": cartItem.SessionID,
			"sku":        cartItem.SKU,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindBySession(sessionID string) ([]model.CartItem, error) {
	// Insertion order: the drawer renders items in the order they were added.
	var cartItems []model.CartItem
	err := r.db.Where("session_id = ?", sessionID).
		Order("id").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by session in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return cartItems, nil
}

func (r *cartRepository) FindBySessionAndSKU(sessionID, sku string) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := r.db.Where("session_id = ? AND sku = ?", sessionID, sku).
		First(&cartItem).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"session_id": cartItem.SessionID,
		"sku":        cartItem.SKU,
		"quantity":   cartItem.Quantity,
	})

	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"session_id": cartItem.SessionID,
			"sku":        cartItem.SKU,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteBySessionAndSKU(sessionID, sku string) error {
	if err := r.db.Unscoped().
		Where("session_id = ? AND sku = ?", sessionID, sku).
		Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        sku,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteBySession(sessionID string) error {
	logger.Debug("Deleting cart items by session from database", map[string]interface{}{
		"session_id": sessionID,
	})

	if err := r.db.Unscoped().
		Where("session_id = ?", sessionID).
		Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
