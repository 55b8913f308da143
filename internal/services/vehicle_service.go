package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type VehicleServiceInterface interface {
	List(ctx context.Context) ([]db_models.Vehicle, error)
	Create(ctx context.Context, request request_models.CreateVehicleRequest) (*db_models.Vehicle, error)
	Update(ctx context.Context, request request_models.UpdateVehicleRequest) (*db_models.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VehicleService struct {
	vehicleRepo repositories.VehicleRepository
	accountRepo repositories.AccountRepository
}

func NewVehicleService(vehicleRepo repositories.VehicleRepository, accountRepo repositories.AccountRepository) VehicleServiceInterface {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		accountRepo: accountRepo,
	}
}

func (v *VehicleService) List(ctx context.Context) ([]db_models.Vehicle, error) {
	vehicles, err := v.vehicleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return vehicles, nil
}

func (v *VehicleService) Create(ctx context.Context, request request_models.CreateVehicleRequest) (*db_models.Vehicle, error) {
	accountID, err := resolveAccount(ctx, v.accountRepo, request.AccountID)
	if err != nil {
		return nil, err
	}

	vehicle := &db_models.Vehicle{
		Name:       request.Name,
		DriverName: request.DriverName,
		PlateNo:    request.PlateNo,
		Status:     request.Status,
		AccountID:  accountID,
	}
	if vehicle.Status == "" {
		vehicle.Status = db_models.VehicleAvailable
	}
	if err := v.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return vehicle, nil
}

func (v *VehicleService) Update(ctx context.Context, request request_models.UpdateVehicleRequest) (*db_models.Vehicle, error) {
	vehicle, err := loadByID(ctx, v.vehicleRepo, request.ID, "Vehicle")
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		vehicle.Name = request.Name
	}
	if request.DriverName != nil && *request.DriverName != "" {
		vehicle.DriverName = *request.DriverName
	}
	if request.PlateNo != nil {
		vehicle.PlateNo = request.PlateNo
	}
	if request.Status != nil {
		vehicle.Status = *request.Status
	}

	if err := v.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("save vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return vehicle, nil
}

func (v *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, v.vehicleRepo, id, "Vehicle")
}
