package models

import (
	"time"
)

// Product is a catalog item offered by the shop (cartões, banners, adesivos...)
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	UnitPrice float64   `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	Unit      string    `gorm:"default:un" json:"unit"` // un, m2, milheiro
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
