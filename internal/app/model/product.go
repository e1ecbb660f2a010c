package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductKind string

const (
	KindService   ProductKind = "service"
	KindFurniture ProductKind = "furniture"
	KindCustom    ProductKind = "custom"
)

// Product is any purchasable entity: a design service, a lookbook piece,
// or a generated custom configuration. Prices are whole currency units.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SKU       string         `gorm:"uniqueIndex;not null" json:"sku"`
	Title     string         `gorm:"not null" json:"title"`
	Kind      ProductKind    `gorm:"type:varchar(20);not null;index" json:"kind"`
	Price     int64          `gorm:"not null" json:"price"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
