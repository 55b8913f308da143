package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospilog/internal/models/db_models"
)

type ShipmentRepository interface {
	CrudRepository[db_models.Shipment]
	FindWithOrders(ctx context.Context, id uuid.UUID) (*db_models.Shipment, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Shipment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ShipmentStatus) error
}

type shipmentRepository struct {
	crudRepository[db_models.Shipment]
}

func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{crudRepository[db_models.Shipment]{db: db}}
}

// List includes the linked orders.
func (r *shipmentRepository) List(ctx context.Context) ([]db_models.Shipment, error) {
	var shipments []db_models.Shipment
	err := conn(ctx, r.db).
		Preload("Orders").
		Order("created_at DESC").
		Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepository) FindWithOrders(ctx context.Context, id uuid.UUID) (*db_models.Shipment, error) {
	var shipment db_models.Shipment
	err := conn(ctx, r.db).Preload("Orders").First(&shipment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Shipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var shipments []db_models.Shipment
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ShipmentStatus) error {
	return conn(ctx, r.db).Model(&db_models.Shipment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
