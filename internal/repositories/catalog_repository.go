package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospilog/internal/models/db_models"
)

type ProductRepository interface {
	CrudRepository[db_models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &crudRepository[db_models.Product]{db: db}
}

type VehicleRepository interface {
	CrudRepository[db_models.Vehicle]
	SetStatus(ctx context.Context, id uuid.UUID, status db_models.VehicleStatus) error
}

type vehicleRepository struct {
	crudRepository[db_models.Vehicle]
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{crudRepository[db_models.Vehicle]{db: db}}
}

func (r *vehicleRepository) SetStatus(ctx context.Context, id uuid.UUID, status db_models.VehicleStatus) error {
	return conn(ctx, r.db).Model(&db_models.Vehicle{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type CertificateRepository interface {
	CrudRepository[db_models.Certificate]
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &crudRepository[db_models.Certificate]{db: db}
}

type InvoiceRepository interface {
	CrudRepository[db_models.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &crudRepository[db_models.Invoice]{db: db}
}
