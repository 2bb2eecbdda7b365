package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaidTolerance is the residual below which an order counts as fully paid
const PaidTolerance = 0.01

// Order represents a print job with its items and payment state
type Order struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string      `gorm:"size:10;uniqueIndex;not null" json:"order_number"`
	ClientID    uint        `gorm:"not null;index" json:"client_id"`
	ClientName  string      `gorm:"not null" json:"client_name"` // snapshot at create/edit time
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total       float64     `gorm:"type:decimal(12,2);not null" json:"total"`
	Entry       float64     `gorm:"type:decimal(12,2);default:0" json:"entry"` // cumulative amount paid
	EntryMethod string      `json:"entry_method"`
	Status      string      `gorm:"default:open;index" json:"status"`
	Date        time.Time   `gorm:"type:date;not null" json:"date"`
	DeliveryDate *time.Time `gorm:"type:date;index" json:"delivery_date"`

	// Installment plan over the balance; present when InstallmentsCount > 1
	InstallmentsCount       int        `gorm:"default:0" json:"installments_count"`
	InstallmentIntervalDays int        `gorm:"default:30" json:"installment_interval_days"`
	FirstInstallmentDate    *time.Time `gorm:"type:date" json:"first_installment_date"`
	InstallmentValue        float64    `gorm:"type:decimal(12,2);default:0" json:"installment_value"`
	PaidInstallments        []int      `gorm:"serializer:json" json:"paid_installments"` // 1-based indices

	Archived  bool      `gorm:"default:false;index" json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// Order status constants
const (
	OrderStatusOpen       = "open"
	OrderStatusArt        = "art"
	OrderStatusProduction = "production"
	OrderStatusShipping   = "shipping"
	OrderStatusCompleted  = "completed"
)

// AllOrderStatuses lists every valid order status
var AllOrderStatuses = []string{
	OrderStatusOpen,
	OrderStatusArt,
	OrderStatusProduction,
	OrderStatusShipping,
	OrderStatusCompleted,
}

// IsValidOrderStatus returns true if s is a member of the status enumeration
func IsValidOrderStatus(s string) bool {
	for _, st := range AllOrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// BeforeCreate assigns a UUID if none was set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Balance returns the amount still owed
func (o *Order) Balance() float64 {
	return o.Total - o.Entry
}

// FullyPaid returns true when the balance is within tolerance of zero
func (o *Order) FullyPaid() bool {
	return o.Balance() <= PaidTolerance
}

// RecalculateArchived re-evaluates the archival invariant:
// archived iff completed and fully paid. Must run after every
// entry or status mutation.
func (o *Order) RecalculateArchived() {
	o.Archived = o.Status == OrderStatusCompleted && o.FullyPaid()
}

// HasInstallmentPlan returns true when the balance is split into installments
func (o *Order) HasInstallmentPlan() bool {
	return o.InstallmentsCount > 1 && o.FirstInstallmentDate != nil
}

// InstallmentPaid returns true if the 1-based index was already settled
func (o *Order) InstallmentPaid(index int) bool {
	for _, i := range o.PaidInstallments {
		if i == index {
			return true
		}
	}
	return false
}

// Reference returns the display reference used in ledger descriptions
func (o *Order) Reference() string {
	return fmt.Sprintf("Pedido #%s", o.OrderNumber)
}

// OrderItem is a single line of an order
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID *uint   `gorm:"index" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"` // snapshot of the product name
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Notes     string  `gorm:"type:text" json:"notes"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times unit price
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// OrderSequence backs the monotonic order-number counter. Unlike a
// count-derived number, it never reuses a number after deletions.
type OrderSequence struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	LastNumber int64 `gorm:"not null;default:0" json:"last_number"`
}

// TableName specifies the table name for OrderSequence
func (OrderSequence) TableName() string {
	return "order_sequences"
}

// OrderResponse is the JSON response format for orders
type OrderResponse struct {
	ID                      string      `json:"id"`
	OrderNumber             string      `json:"order_number"`
	ClientID                uint        `json:"client_id"`
	ClientName              string      `json:"client_name"`
	Items                   []OrderItem `json:"items"`
	Total                   float64     `json:"total"`
	Entry                   float64     `json:"entry"`
	EntryMethod             string      `json:"entry_method"`
	Balance                 float64     `json:"balance"`
	Status                  string      `json:"status"`
	Date                    time.Time   `json:"date"`
	DeliveryDate            *time.Time  `json:"delivery_date"`
	InstallmentsCount       int         `json:"installments_count"`
	InstallmentIntervalDays int         `json:"installment_interval_days"`
	FirstInstallmentDate    *time.Time  `json:"first_installment_date"`
	InstallmentValue        float64     `json:"installment_value"`
	PaidInstallments        []int       `json:"paid_installments"`
	Archived                bool        `json:"archived"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// ToResponse converts Order to OrderResponse
func (o *Order) ToResponse() OrderResponse {
	paid := o.PaidInstallments
	if paid == nil {
		paid = []int{}
	}
	items := o.Items
	if items == nil {
		items = []OrderItem{}
	}
	return OrderResponse{
		ID:                      o.ID,
		OrderNumber:             o.OrderNumber,
		ClientID:                o.ClientID,
		ClientName:              o.ClientName,
		Items:                   items,
		Total:                   o.Total,
		Entry:                   o.Entry,
		EntryMethod:             o.EntryMethod,
		Balance:                 o.Balance(),
		Status:                  o.Status,
		Date:                    o.Date,
		DeliveryDate:            o.DeliveryDate,
		InstallmentsCount:       o.InstallmentsCount,
		InstallmentIntervalDays: o.InstallmentIntervalDays,
		FirstInstallmentDate:    o.FirstInstallmentDate,
		InstallmentValue:        o.InstallmentValue,
		PaidInstallments:        paid,
		Archived:                o.Archived,
		CreatedAt:               o.CreatedAt,
		UpdatedAt:               o.UpdatedAt,
	}
}
