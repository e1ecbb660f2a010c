package service

import (
	"errors"
	"fmt"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
)

// Cart holds the items of one session together with the derived totals.
type Cart struct {
	Items  []model.CartItem `json:"items"`
	Totals model.CartTotals `json:"totals"`
}

type CartService interface {
	GetCart(sessionID string) (*Cart, error)
	AddItem(sessionID, sku string) (*Cart, error)
	AddProduct(sessionID string, product *model.Product) (*Cart, error)
	UpdateQuantity(sessionID, sku string, delta int) (*Cart, error)
	RemoveItem(sessionID, sku string) (*Cart, error)
	Clear(sessionID string) error
}

type cartService struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	notifications NotificationService
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	notifications NotificationService,
) CartService {
	return &cartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		notifications: notifications,
	}
}

func (s *cartService) GetCart(sessionID string) (*Cart, error) {
	items, err := s.cartRepo.FindBySession(sessionID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return &Cart{Items: items, Totals: model.ComputeTotals(items)}, nil
}

// AddItem adds one unit of a catalog product to the cart. Adding a SKU
// already in the cart bumps its quantity instead of creating a second line.
func (s *cartService) AddItem(sessionID, sku string) (*Cart, error) {
	product, err := s.productRepo.FindBySKU(sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"sku":        sku,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"sku": sku,
		})
		return nil, err
	}
	return s.AddProduct(sessionID, product)
}

// AddProduct adds one unit of an arbitrary product, including configured
// one-off pieces that are not in the base catalog.
func (s *cartService) AddProduct(sessionID string, product *model.Product) (*Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"sku":        product.SKU,
	})

	existing, err := s.cartRepo.FindBySessionAndSKU(sessionID, product.SKU)
	switch {
	case err == nil:
		existing.Quantity++
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &model.CartItem{
			SessionID: sessionID,
			SKU:       product.SKU,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
	default:
		logger.Error("Failed to look up cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        product.SKU,
		})
		return nil, err
	}

	s.notifications.Push(sessionID, model.NotificationSuccess,
		fmt.Sprintf("%s added to cart!", product.Title))

	return s.GetCart(sessionID)
}

// UpdateQuantity adjusts a line's quantity by delta. The quantity never
// drops below 1; removal is a separate operation. An unknown SKU leaves
// the cart untouched.
func (s *cartService) UpdateQuantity(sessionID, sku string, delta int) (*Cart, error) {
	item, err := s.cartRepo.FindBySessionAndSKU(sessionID, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.GetCart(sessionID)
		}
		return nil, err
	}

	quantity := item.Quantity + delta
	if quantity < 1 {
		quantity = 1
	}

	if quantity != item.Quantity {
		item.Quantity = quantity
		if err := s.cartRepo.Update(item); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"session_id": sessionID,
				"sku":        sku,
			})
			return nil, err
		}
	}
	return s.GetCart(sessionID)
}

// RemoveItem deletes a line from the cart. Removing a SKU that is not in
// the cart is a no-op.
func (s *cartService) RemoveItem(sessionID, sku string) (*Cart, error) {
	if err := s.cartRepo.DeleteBySessionAndSKU(sessionID, sku); err != nil {
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        sku,
		})
		return nil, err
	}
	return s.GetCart(sessionID)
}

func (s *cartService) Clear(sessionID string) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"session_id": sessionID,
	})
	return s.cartRepo.DeleteBySession(sessionID)
}
