package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hospilog/pkg/utils"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderVerified  OrderStatus = "VERIFIED"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// OrderLineItem is a snapshot of a product at ordering time. It is never
// joined back to the products table.
type OrderLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Dosage    *string `json:"dosage,omitempty"`
	Category  *string `json:"category,omitempty"`
}

type Order struct {
	BaseModel
	Products        datatypes.JSONType[[]OrderLineItem] `gorm:"type:jsonb;not null" json:"products"`
	AccountID       uuid.UUID                           `gorm:"type:uuid;not null;index" json:"account_id"`
	Destination     string                              `json:"destination"`
	IsVerified      bool                                `gorm:"not null;default:false" json:"isVerified"`
	VendorConfirmed bool                                `gorm:"not null;default:false" json:"vendorConfirmed"`
	Status          OrderStatus                         `gorm:"type:varchar(16);not null;index" json:"status"`
	ShipmentID      *uuid.UUID                          `gorm:"type:uuid;index" json:"shipment_id"`
}

func (o *Order) LineItems() []OrderLineItem {
	return o.Products.Data()
}

func (o *Order) Verify() error {
	if o.IsVerified || o.Status != OrderPending {
		return utils.Transition("order", o.ID.String(), "cannot be verified from "+string(o.Status))
	}
	o.IsVerified = true
	o.Status = OrderVerified
	return nil
}

func (o *Order) Confirm() error {
	if !o.IsVerified {
		return utils.Transition("order", o.ID.String(), "must be verified before vendor confirmation")
	}
	if o.VendorConfirmed || o.Status != OrderVerified {
		return utils.Transition("order", o.ID.String(), "cannot be confirmed from "+string(o.Status))
	}
	o.VendorConfirmed = true
	o.Status = OrderConfirmed
	return nil
}

// CanShip checks every precondition for attaching the order to a new shipment.
func (o *Order) CanShip() error {
	switch {
	case o.Status == OrderCancelled:
		return utils.Transition("order", o.ID.String(), "is cancelled")
	case !o.IsVerified:
		return utils.Transition("order", o.ID.String(), "is not verified")
	case !o.VendorConfirmed:
		return utils.Transition("order", o.ID.String(), "is not confirmed by the vendor")
	case o.ShipmentID != nil:
		return utils.Transition("order", o.ID.String(), "is already linked to shipment "+o.ShipmentID.String())
	case o.Status != OrderConfirmed:
		return utils.Transition("order", o.ID.String(), "cannot ship from "+string(o.Status))
	}
	return nil
}

func (o *Order) MarkShipped(shipmentID uuid.UUID) error {
	if err := o.CanShip(); err != nil {
		return err
	}
	o.ShipmentID = &shipmentID
	o.Status = OrderShipped
	return nil
}

func (o *Order) MarkDelivered() error {
	if o.Status != OrderShipped {
		return utils.Transition("order", o.ID.String(), "cannot be delivered from "+string(o.Status))
	}
	o.Status = OrderDelivered
	return nil
}

// ReleaseFromShipment detaches a shipped order from a cancelled shipment so it
// can ride another one.
func (o *Order) ReleaseFromShipment() error {
	if o.Status != OrderShipped {
		return utils.Transition("order", o.ID.String(), "is not in transit")
	}
	o.ShipmentID = nil
	o.Status = OrderConfirmed
	return nil
}

func (o *Order) Cancel() error {
	if o.Status.Terminal() {
		return utils.Transition("order", o.ID.String(), "is already "+string(o.Status))
	}
	o.Status = OrderCancelled
	return nil
}
