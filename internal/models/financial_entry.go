package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialEntry represents a single income or expense record in the
// cash-flow ledger. Entries derived from an order carry its ID as a
// foreign key; manual entries leave it nil.
type FinancialEntry struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID           *string    `gorm:"type:uuid;index" json:"order_id,omitempty"`
	InstallmentNumber *int       `json:"installment_number,omitempty"` // 1-based, schedule rows only
	Description       string     `gorm:"not null" json:"description"`
	Amount            float64    `gorm:"type:decimal(12,2);not null" json:"amount"` // always positive
	Type              string     `gorm:"not null;index" json:"type"`
	Date              time.Time  `gorm:"type:date;not null;index" json:"date"`
	Category          string     `gorm:"index" json:"category"`
	AccountID         *uint      `gorm:"index" json:"account_id,omitempty"`
	Method            string     `json:"method"`
	Status            string     `gorm:"default:pending;not null;index" json:"status"`

	// Recurrence (manual entries only). A template spawns dated copies;
	// copies point back via RecurrenceSourceID.
	Recurring          bool       `gorm:"default:false" json:"recurring"`
	RecurrenceInterval string     `json:"recurrence_interval,omitempty"`
	RecurrenceEnd      *time.Time `gorm:"type:date" json:"recurrence_end,omitempty"`
	RecurrenceSourceID *string    `gorm:"type:uuid;index" json:"recurrence_source_id,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Order   *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName specifies the table name for FinancialEntry
func (FinancialEntry) TableName() string {
	return "financial_entries"
}

// Entry type constants
const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"
)

// Entry status constants
const (
	EntryStatusPaid    = "paid"
	EntryStatusPending = "pending"
)

// Recurrence interval constants
const (
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// CategorySales is the category assigned to order-derived income
const CategorySales = "Vendas"

// BeforeCreate assigns a UUID if none was set
func (e *FinancialEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// SignedAmount returns the amount with income positive and expense negative
func (e *FinancialEntry) SignedAmount() float64 {
	if e.Type == EntryTypeExpense {
		return -e.Amount
	}
	return e.Amount
}

// IsPaid returns true when the entry has been settled
func (e *FinancialEntry) IsPaid() bool {
	return e.Status == EntryStatusPaid
}

// NextOccurrence returns the date one recurrence interval after from.
// Returns from unchanged for unknown intervals.
func (e *FinancialEntry) NextOccurrence(from time.Time) time.Time {
	switch e.RecurrenceInterval {
	case RecurrenceWeekly:
		return from.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return from.AddDate(0, 1, 0)
	case RecurrenceYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}
