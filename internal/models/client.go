package models

import (
	"time"
)

// Client represents a customer of the print shop
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Document  string    `json:"document"` // CPF/CNPJ
	Address   string    `json:"address"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// HasPhone returns true when a phone number is on file
func (c *Client) HasPhone() bool {
	return c.Phone != ""
}
