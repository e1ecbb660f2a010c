package model

import (
	"time"

	"gorm.io/gorm"
)

// Order is the durable record written when a checkout completes.
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Reference string         `gorm:"uniqueIndex;not null" json:"reference"`
	SessionID string         `gorm:"not null;index" json:"-"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Subtotal  int64          `gorm:"not null" json:"subtotal"`
	Shipping  int64          `gorm:"not null" json:"shipping"`
	Total     int64          `gorm:"not null" json:"total"`
	Items     []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	OrderID   uint      `gorm:"not null;index" json:"-"`
	SKU       string    `gorm:"not null" json:"sku"`
	Title     string    `gorm:"not null" json:"title"`
	Price     int64     `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
