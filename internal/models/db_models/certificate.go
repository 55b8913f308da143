package db_models

import (
	"time"

	"github.com/google/uuid"
)

type CertificateStatus string

const (
	CertPending CertificateStatus = "PENDING"
	CertValid   CertificateStatus = "VALID"
	CertExpired CertificateStatus = "EXPIRED"
	CertRevoked CertificateStatus = "REVOKED"
)

type Certificate struct {
	BaseModel
	Name        string            `gorm:"not null" json:"name"`
	IssuedBy    string            `gorm:"not null" json:"issued_by"`
	IssueDate   time.Time         `gorm:"not null" json:"issueDate"`
	ExpiryDate  *time.Time        `json:"expiryDate,omitempty"`
	DocumentURL *string           `json:"document_url,omitempty"`
	Status      CertificateStatus `gorm:"type:varchar(16);not null" json:"status"`
	AccountID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"account_id"`
}
