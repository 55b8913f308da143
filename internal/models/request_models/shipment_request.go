package request_models

import (
	"time"

	"hospilog/internal/models/db_models"
)

type CreateShipmentRequest struct {
	Destination string     `json:"destination" binding:"required"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Description string     `json:"description"`
	VehicleID   string     `json:"vehicle_id" binding:"required,uuid"`
	OrderIDs    []string   `json:"orders_id" binding:"omitempty,dive,uuid"`
}

type UpdateShipmentRequest struct {
	ID          string     `json:"id" binding:"required,uuid"`
	Destination *string    `json:"destination"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Description *string    `json:"description"`
}

type UpdateShipmentStatusRequest struct {
	Status db_models.ShipmentStatus `json:"status" binding:"required,oneof=PENDING IN_TRANSIT DELIVERED DELAYED CANCELLED"`
}
