package db_models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

type Invoice struct {
	BaseModel
	Number    string        `gorm:"uniqueIndex;not null" json:"number"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Status    InvoiceStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	IssueDate time.Time     `gorm:"not null" json:"issueDate"`
	AccountID uuid.UUID     `gorm:"type:uuid;not null;index" json:"account_id"`
}
