package db_models

import "github.com/google/uuid"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleReserved    VehicleStatus = "RESERVED"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

// Assignable reports whether a shipment may take the vehicle.
func (s VehicleStatus) Assignable() bool {
	return s == VehicleAvailable || s == VehicleReserved
}

type Vehicle struct {
	BaseModel
	Name       *string       `json:"name,omitempty"`
	DriverName string        `gorm:"not null" json:"driver_name"`
	PlateNo    *string       `json:"plate_no,omitempty"`
	Status     VehicleStatus `gorm:"type:varchar(16);not null" json:"status"`
	AccountID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"account_id"`
}
