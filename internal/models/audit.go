package models

import (
	"time"
)

// AuditLog records a mutation performed through the API
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"not null;index" json:"action"` // CREATE, UPDATE, DELETE, PAYMENT...
	Entity    string    `gorm:"not null;index" json:"entity"`
	EntityID  string    `gorm:"index" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
