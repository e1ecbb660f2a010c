package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidOption   = errors.New("invalid customizer option")
)

// Customizer options for made-to-order sofas. Price is the size base price
// scaled by the material modifier.
type SizeOption struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	BasePrice int64  `json:"base_price"`
}

type MaterialOption struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	PriceMod float64 `json:"price_mod"`
}

type ColorOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

var (
	sizeOptions = []SizeOption{
		{ID: "2-seater", Label: "2-Seater", BasePrice: 2400},
		{ID: "3-seater", Label: "3-Seater", BasePrice: 3200},
		{ID: "l-shape", Label: "L-Shape Sectional", BasePrice: 4500},
	}
	materialOptions = []MaterialOption{
		{ID: "linen", Label: "Linen", PriceMod: 1.0},
		{ID: "velvet", Label: "Velvet", PriceMod: 1.2},
		{ID: "leather", Label: "Leather", PriceMod: 1.5},
	}
	colorOptions = []ColorOption{
		{ID: "charcoal", Label: "Charcoal", Hex: "#36454F"},
		{ID: "cream", Label: "Cream", Hex: "#FFFDD0"},
		{ID: "terracotta", Label: "Terracotta", Hex: "#E2725B"},
		{ID: "sage", Label: "Sage", Hex: "#9CAF88"},
	}
)

// CustomizerOptions is the full option set offered by the sofa customizer.
type CustomizerOptions struct {
	Sizes     []SizeOption     `json:"sizes"`
	Materials []MaterialOption `json:"materials"`
	Colors    []ColorOption    `json:"colors"`
}

type ProductService interface {
	List() ([]model.Product, error)
	ListByKind(kind model.ProductKind) ([]model.Product, error)
	GetBySKU(sku string) (*model.Product, error)
	Options() CustomizerOptions
	Configure(sizeID, materialID, colorID string) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) List() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) ListByKind(kind model.ProductKind) ([]model.Product, error) {
	return s.productRepo.FindByKind(kind)
}

func (s *productService) GetBySKU(sku string) (*model.Product, error) {
	product, err := s.productRepo.FindBySKU(sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Options() CustomizerOptions {
	return CustomizerOptions{
		Sizes:     sizeOptions,
		Materials: materialOptions,
		Colors:    colorOptions,
	}
}

// Configure builds a one-off product from customizer selections. The
// result is persisted under a generated SKU so it can go into a cart.
func (s *productService) Configure(sizeID, materialID, colorID string) (*model.Product, error) {
	size, ok := findSize(sizeID)
	if !ok {
		return nil, ErrInvalidOption
	}
	material, ok := findMaterial(materialID)
	if !ok {
		return nil, ErrInvalidOption
	}
	color, ok := findColor(colorID)
	if !ok {
		return nil, ErrInvalidOption
	}

	price := int64(math.Round(float64(size.BasePrice) * material.PriceMod))
	product := &model.Product{
		SKU:   fmt.Sprintf("custom-%s", uuid.NewString()),
		Title: fmt.Sprintf("Custom Sofa (%s, %s, %s)", size.Label, material.Label, color.Label),
		Kind:  model.KindCustom,
		Price: price,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to persist configured product", err, map[string]interface{}{
			"sku": product.SKU,
		})
		return nil, err
	}

	logger.Info("Custom product configured", map[string]interface{}{
		"sku":   product.SKU,
		"price": product.Price,
	})
	return product, nil
}

func findSize(id string) (SizeOption, bool) {
	for _, o := range sizeOptions {
		if o.ID == id {
			return o, true
		}
	}
	return SizeOption{}, false
}

func findMaterial(id string) (MaterialOption, bool) {
	for _, o := range materialOptions {
		if o.ID == id {
			return o, true
		}
	}
	return MaterialOption{}, false
}

func findColor(id string) (ColorOption, bool) {
	for _, o := range colorOptions {
		if o.ID == id {
			return o, true
		}
	}
	return ColorOption{}, false
}
