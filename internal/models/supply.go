package models

import (
	"time"
)

// Supply is a stock item consumed by production (lona, vinil, tinta...)
type Supply struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Quantity    float64   `gorm:"default:0" json:"quantity"`
	MinQuantity float64   `gorm:"default:0" json:"min_quantity"`
	UnitCost    float64   `gorm:"type:decimal(12,2);default:0" json:"unit_cost"`
	Supplier    string    `json:"supplier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Supply
func (Supply) TableName() string {
	return "supplies"
}

// IsLow returns true when the stock is at or below the minimum threshold
func (s *Supply) IsLow() bool {
	return s.MinQuantity > 0 && s.Quantity <= s.MinQuantity
}
