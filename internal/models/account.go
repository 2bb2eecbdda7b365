package models

import (
	"time"
)

// Account is a destination for financial entries (caixa, banco, pix...).
// Balance is not stored; it is computed on demand from PAID entries.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// AccountBalance pairs an account with its computed balance
type AccountBalance struct {
	Account Account `json:"account"`
	Balance float64 `json:"balance"`
}
