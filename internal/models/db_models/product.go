package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductCategory string

const (
	CategoryMedicine  ProductCategory = "MEDICINE"
	CategoryEquipment ProductCategory = "EQUIPMENT"
	CategorySupplies  ProductCategory = "SUPPLIES"
	CategoryDevice    ProductCategory = "DEVICE"
	CategoryOther     ProductCategory = "OTHER"
)

type Product struct {
	BaseModel
	Name         string          `gorm:"not null" json:"name"`
	Price        float64         `gorm:"not null" json:"price"`
	Stocks       int             `gorm:"not null;default:0" json:"stocks"`
	Dosage       *string         `json:"dosage,omitempty"`
	Category     ProductCategory `gorm:"type:varchar(16);not null" json:"category"`
	HandlingTags pq.StringArray  `gorm:"type:text[]" json:"handling_tags"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
}
