package db_models

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentDelayed   ShipmentStatus = "DELAYED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentPending:   {ShipmentInTransit, ShipmentDelayed, ShipmentCancelled},
	ShipmentInTransit: {ShipmentDelayed, ShipmentDelivered, ShipmentCancelled},
	ShipmentDelayed:   {ShipmentInTransit, ShipmentDelivered, ShipmentCancelled},
}

func (s ShipmentStatus) CanMoveTo(next ShipmentStatus) bool {
	for _, allowed := range shipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ShipmentStatus) Closed() bool {
	return s == ShipmentDelivered || s == ShipmentCancelled
}

type Shipment struct {
	BaseModel
	TrackingCode string         `gorm:"uniqueIndex;not null" json:"tracking_code"`
	Destination  string         `gorm:"not null" json:"destination"`
	Start        *time.Time     `json:"start"`
	End          *time.Time     `json:"end"`
	Description  string         `json:"description"`
	VehicleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Status       ShipmentStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Orders       []Order        `gorm:"foreignKey:ShipmentID" json:"orders"`
}
