package models

import (
	"time"
)

// SystemSettings holds the company identity used on generated documents.
// A single row (ID 1) exists per installation.
type SystemSettings struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `json:"company_name"`
	LegalID     string    `json:"legal_id"` // CNPJ
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	PixKey      string    `json:"pix_key"`
	LogoPath    string    `json:"logo_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for SystemSettings
func (SystemSettings) TableName() string {
	return "system_settings"
}
