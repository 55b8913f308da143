package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospilog/internal/models/db_models"
)

type OrderFilter struct {
	AccountID  *uuid.UUID
	Status     db_models.OrderStatus
	ShipmentID *uuid.UUID
}

type OrderRepository interface {
	CrudRepository[db_models.Order]
	Search(ctx context.Context, filter OrderFilter) ([]db_models.Order, error)
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]db_models.Order, error)
}

type orderRepository struct {
	crudRepository[db_models.Order]
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{crudRepository[db_models.Order]{db: db}}
}

func (r *orderRepository) Search(ctx context.Context, filter OrderFilter) ([]db_models.Order, error) {
	q := conn(ctx, r.db).Model(&db_models.Order{})
	if filter.AccountID != nil {
		q = q.Where("orders.account_id = ?", *filter.AccountID)
	}
	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if filter.ShipmentID != nil {
		q = q.Where("orders.shipment_id = ?", *filter.ShipmentID)
	}

	var orders []db_models.Order
	err := q.Order("orders.created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]db_models.Order, error) {
	var orders []db_models.Order
	err := conn(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}
