package model

import (
	"time"

	"gorm.io/gorm"
)

// Shipping is free only above the threshold; a subtotal of exactly
// FreeShippingThreshold still pays the flat fee.
const (
	FreeShippingThreshold int64 = 5000
	FlatShippingFee       int64 = 150
)

// CartItem is one line of a session's basket. SKU is unique within a cart;
// adding the same SKU again increments Quantity instead of inserting.
// Title, Price and Image are snapshots of the product at add time.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	SessionID string         `gorm:"not null;index:idx_cart_session_sku,unique" json:"-"`
	SKU       string         `gorm:"not null;index:idx_cart_session_sku,unique" json:"sku"`
	Title     string         `gorm:"not null" json:"title"`
	Price     int64          `gorm:"not null" json:"price"`
	Image     string         `json:"image,omitempty"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartTotals are derived values, recomputed on every read.
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals derives subtotal, shipping and total from the given items.
func ComputeTotals(items []CartItem) CartTotals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
