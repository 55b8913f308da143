package request_models

import (
	"time"

	"hospilog/internal/models/db_models"
)

type CreateProductRequest struct {
	Name         string                     `json:"name" binding:"required"`
	Price        float64                    `json:"price" binding:"min=0"`
	Stocks       int                        `json:"stocks" binding:"min=0"`
	Dosage       *string                    `json:"dosage"`
	Category     *db_models.ProductCategory `json:"category" binding:"omitempty,oneof=MEDICINE EQUIPMENT SUPPLIES DEVICE OTHER"`
	HandlingTags []string                   `json:"handling_tags"`
	AccountID    string                     `json:"account_id" binding:"required,uuid"`
}

type UpdateProductRequest struct {
	ID           string                     `json:"id" binding:"required,uuid"`
	Name         *string                    `json:"name"`
	Price        *float64                   `json:"price" binding:"omitempty,min=0"`
	Stocks       *int                       `json:"stocks" binding:"omitempty,min=0"`
	Dosage       *string                    `json:"dosage"`
	Category     *db_models.ProductCategory `json:"category" binding:"omitempty,oneof=MEDICINE EQUIPMENT SUPPLIES DEVICE OTHER"`
	HandlingTags []string                   `json:"handling_tags"`
}

type CreateVehicleRequest struct {
	Name       *string                 `json:"name"`
	DriverName string                  `json:"driver_name" binding:"required"`
	PlateNo    *string                 `json:"plate_no"`
	Status     db_models.VehicleStatus `json:"status" binding:"required,oneof=AVAILABLE RESERVED IN_USE MAINTENANCE"`
	AccountID  string                  `json:"account_id" binding:"required,uuid"`
}

type UpdateVehicleRequest struct {
	ID         string                   `json:"id" binding:"required,uuid"`
	Name       *string                  `json:"name"`
	DriverName *string                  `json:"driver_name"`
	PlateNo    *string                  `json:"plate_no"`
	Status     *db_models.VehicleStatus `json:"status" binding:"omitempty,oneof=AVAILABLE RESERVED IN_USE MAINTENANCE"`
}

type CreateCertificateRequest struct {
	Name        string                      `json:"name" binding:"required"`
	IssuedBy    string                      `json:"issued_by" binding:"required"`
	IssueDate   time.Time                   `json:"issueDate" binding:"required"`
	ExpiryDate  *time.Time                  `json:"expiryDate"`
	DocumentURL *string                     `json:"document_url" binding:"omitempty,url"`
	Status      db_models.CertificateStatus `json:"status" binding:"required,oneof=PENDING VALID EXPIRED REVOKED"`
	AccountID   string                      `json:"account_id" binding:"required,uuid"`
}

type UpdateCertificateRequest struct {
	ID          string                       `json:"id" binding:"required,uuid"`
	Name        *string                      `json:"name"`
	IssuedBy    *string                      `json:"issued_by"`
	IssueDate   *time.Time                   `json:"issueDate"`
	ExpiryDate  *time.Time                   `json:"expiryDate"`
	DocumentURL *string                      `json:"document_url" binding:"omitempty,url"`
	Status      *db_models.CertificateStatus `json:"status" binding:"omitempty,oneof=PENDING VALID EXPIRED REVOKED"`
	AccountID   *string                      `json:"account_id" binding:"omitempty,uuid"`
}

type CreateInvoiceRequest struct {
	Amount    float64                 `json:"amount" binding:"min=0"`
	Status    db_models.InvoiceStatus `json:"status" binding:"required,oneof=PENDING PAID OVERDUE CANCELLED"`
	IssueDate time.Time               `json:"issueDate" binding:"required"`
	AccountID string                  `json:"account_id" binding:"required,uuid"`
}

type UpdateInvoiceRequest struct {
	ID        string                   `json:"id" binding:"required,uuid"`
	Amount    *float64                 `json:"amount" binding:"omitempty,min=0"`
	Status    *db_models.InvoiceStatus `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	IssueDate *time.Time               `json:"issueDate"`
	AccountID *string                  `json:"account_id" binding:"omitempty,uuid"`
}
