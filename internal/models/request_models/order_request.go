package request_models

import "hospilog/internal/models/db_models"

type OrderLineItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"min=0"`
	Dosage    *string `json:"dosage"`
	Category  *string `json:"category"`
}

type CreateOrderRequest struct {
	// AccountID defaults to the caller's account.
	AccountID   string                 `json:"account_id" binding:"omitempty,uuid"`
	Destination string                 `json:"destination"`
	Products    []OrderLineItemRequest `json:"products" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	ID              string                 `json:"id" binding:"required,uuid"`
	Products        []OrderLineItemRequest `json:"products" binding:"omitempty,min=1,dive"`
	Destination     *string                `json:"destination"`
	IsVerified      *bool                  `json:"isVerified"`
	VendorConfirmed *bool                  `json:"vendorConfirmed"`
	Status          *db_models.OrderStatus `json:"status" binding:"omitempty,oneof=PENDING VERIFIED CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

func (r OrderLineItemRequest) Snapshot() db_models.OrderLineItem {
	return db_models.OrderLineItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		Dosage:    r.Dosage,
		Category:  r.Category,
	}
}

func SnapshotLineItems(items []OrderLineItemRequest) []db_models.OrderLineItem {
	out := make([]db_models.OrderLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.Snapshot())
	}
	return out
}
