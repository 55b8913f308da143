package shipment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospilog/internal/config"
	"hospilog/internal/repositories"
	"hospilog/internal/services"
)

var Module = fx.Provide(
	provideShipmentRepo, provideShipmentService)

func provideShipmentRepo(db *gorm.DB) repositories.ShipmentRepository {
	return repositories.NewShipmentRepository(db)
}

func provideShipmentService(
	cfg *config.Config,
	shipmentRepo repositories.ShipmentRepository,
	orderRepo repositories.OrderRepository,
	vehicleRepo repositories.VehicleRepository,
	tx repositories.Transactor,
	events services.EventPublisher,
	logger *zap.Logger,
) services.ShipmentServiceInterface {
	return services.NewShipmentService(shipmentRepo, orderRepo, vehicleRepo, tx, events,
		services.ShipmentOptions{ReserveVehicle: cfg.Lifecycle.ReserveVehicle}, logger)
}
