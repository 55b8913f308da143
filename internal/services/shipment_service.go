package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/obs"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type ShipmentServiceInterface interface {
	List(ctx context.Context) ([]db_models.Shipment, error)
	Create(ctx context.Context, request request_models.CreateShipmentRequest) (*db_models.Shipment, error)
	Update(ctx context.Context, request request_models.UpdateShipmentRequest) (*db_models.Shipment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ShipmentStatus) (*db_models.Shipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShipmentOptions struct {
	// ReserveVehicle moves the vehicle to IN_USE while a shipment is open.
	ReserveVehicle bool
}

type ShipmentService struct {
	shipmentRepo repositories.ShipmentRepository
	orderRepo    repositories.OrderRepository
	vehicleRepo  repositories.VehicleRepository
	tx           repositories.Transactor
	events       EventPublisher
	opts         ShipmentOptions
	logger       *zap.Logger
}

func NewShipmentService(
	shipmentRepo repositories.ShipmentRepository,
	orderRepo repositories.OrderRepository,
	vehicleRepo repositories.VehicleRepository,
	tx repositories.Transactor,
	events EventPublisher,
	opts ShipmentOptions,
	logger *zap.Logger,
) ShipmentServiceInterface {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		vehicleRepo:  vehicleRepo,
		tx:           tx,
		events:       events,
		opts:         opts,
		logger:       logger.Named("shipments"),
	}
}

func (s *ShipmentService) List(ctx context.Context) ([]db_models.Shipment, error) {
	shipments, err := s.shipmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return shipments, nil
}

func parseOrderIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, utils.Invalid("orders_id", "must contain uuids")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create opens a shipment and links every order to it. Either every order is
// linked or nothing is written.
func (s *ShipmentService) Create(ctx context.Context, request request_models.CreateShipmentRequest) (*db_models.Shipment, error) {
	vehicleID, err := uuid.Parse(request.VehicleID)
	if err != nil {
		return nil, utils.Invalid("vehicle_id", "must be a uuid")
	}
	orderIDs, err := parseOrderIDs(request.OrderIDs)
	if err != nil {
		return nil, err
	}
	if request.Start != nil && request.End != nil && request.End.Before(*request.Start) {
		return nil, utils.Invalid("end", "must not precede start")
	}

	shipment := &db_models.Shipment{
		TrackingCode: "SHP-" + ulid.Make().String(),
		Destination:  request.Destination,
		Start:        request.Start,
		End:          request.End,
		Description:  request.Description,
		VehicleID:    vehicleID,
		Status:       db_models.ShipmentPending,
	}

	var orders []db_models.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		vehicle, err := s.vehicleRepo.LockByID(ctx, vehicleID)
		if err != nil {
			return fmt.Errorf("lock vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if vehicle == nil {
			return utils.NotFound("Vehicle")
		}
		if s.opts.ReserveVehicle && !vehicle.Status.Assignable() {
			return fmt.Errorf("%w: vehicle %s is %s", utils.ErrVehicleUnavailable, vehicle.ID, vehicle.Status)
		}

		orders = make([]db_models.Order, 0, len(orderIDs))
		for _, id := range orderIDs {
			order, err := s.orderRepo.LockByID(ctx, id)
			if err != nil {
				return fmt.Errorf("lock order: %w", errors.Join(utils.ErrDatabaseError, err))
			}
			if order == nil {
				return utils.NotFound("Order")
			}
			if err := order.CanShip(); err != nil {
				return err
			}
			orders = append(orders, *order)
		}

		if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
			return fmt.Errorf("create shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}

		for i := range orders {
			if err := orders[i].MarkShipped(shipment.ID); err != nil {
				return err
			}
			if err := s.orderRepo.Save(ctx, &orders[i]); err != nil {
				return fmt.Errorf("link order: %w", errors.Join(utils.ErrDatabaseError, err))
			}
		}

		if s.opts.ReserveVehicle {
			if err := s.vehicleRepo.SetStatus(ctx, vehicleID, db_models.VehicleInUse); err != nil {
				return fmt.Errorf("reserve vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	shipment.Orders = orders
	for range orders {
		obs.OrderTransition(string(db_models.OrderConfirmed), string(db_models.OrderShipped))
	}
	publishAll(ctx, s.events, s.logger, LifecycleEvent{
		Type:     EventShipmentCreated,
		EntityID: shipment.ID,
		To:       string(shipment.Status),
		Orders:   orderIDsOf(orders),
	})
	return shipment, nil
}

func (s *ShipmentService) Update(ctx context.Context, request request_models.UpdateShipmentRequest) (*db_models.Shipment, error) {
	id, err := uuid.Parse(request.ID)
	if err != nil {
		return nil, utils.Invalid("id", "must be a uuid")
	}

	var shipment *db_models.Shipment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shipment, err = s.shipmentRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if shipment == nil {
			return utils.NotFound("Shipment")
		}

		if request.Destination != nil && *request.Destination != "" {
			shipment.Destination = *request.Destination
		}
		if request.Description != nil {
			shipment.Description = *request.Description
		}
		if request.Start != nil {
			shipment.Start = request.Start
		}
		if request.End != nil {
			shipment.End = request.End
		}
		if shipment.Start != nil && shipment.End != nil && shipment.End.Before(*shipment.Start) {
			return utils.Invalid("end", "must not precede start")
		}

		if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
			return fmt.Errorf("save shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// UpdateStatus moves the shipment along its state machine. Delivery marks the
// shipped orders delivered; cancellation hands them back for another shipment.
func (s *ShipmentService) UpdateStatus(ctx context.Context, id uuid.UUID, next db_models.ShipmentStatus) (*db_models.Shipment, error) {
	var (
		shipment *db_models.Shipment
		from     db_models.ShipmentStatus
		touched  []db_models.Order
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		shipment, err = s.shipmentRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if shipment == nil {
			return utils.NotFound("Shipment")
		}
		from = shipment.Status
		if !from.CanMoveTo(next) {
			return utils.Transition("shipment", shipment.ID.String(),
				fmt.Sprintf("cannot move from %s to %s", from, next))
		}

		orders, err := s.orderRepo.FindByShipment(ctx, shipment.ID)
		if err != nil {
			return fmt.Errorf("load orders: %w", errors.Join(utils.ErrDatabaseError, err))
		}

		for i := range orders {
			o := &orders[i]
			switch {
			case next == db_models.ShipmentDelivered && o.Status == db_models.OrderShipped:
				err = o.MarkDelivered()
			case next == db_models.ShipmentCancelled && o.Status == db_models.OrderShipped:
				err = o.ReleaseFromShipment()
			case next == db_models.ShipmentCancelled:
				o.ShipmentID = nil
			default:
				continue
			}
			if err != nil {
				return err
			}
			if err := s.orderRepo.Save(ctx, o); err != nil {
				return fmt.Errorf("save order: %w", errors.Join(utils.ErrDatabaseError, err))
			}
			touched = append(touched, *o)
		}

		if err := s.shipmentRepo.UpdateStatus(ctx, shipment.ID, next); err != nil {
			return fmt.Errorf("update shipment status: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		shipment.Status = next

		if s.opts.ReserveVehicle && next.Closed() {
			if err := s.vehicleRepo.SetStatus(ctx, shipment.VehicleID, db_models.VehicleAvailable); err != nil {
				return fmt.Errorf("release vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
			}
		}

		if next != db_models.ShipmentCancelled {
			shipment.Orders = orders
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, o := range touched {
		obs.OrderTransition(string(db_models.OrderShipped), string(o.Status))
	}
	publishAll(ctx, s.events, s.logger, LifecycleEvent{
		Type:     EventShipmentStatus,
		EntityID: shipment.ID,
		From:     string(from),
		To:       string(next),
		Orders:   orderIDsOf(touched),
	})
	return shipment, nil
}

func (s *ShipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shipment, err := s.shipmentRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if shipment == nil {
			return utils.NotFound("Shipment")
		}

		linked, err := s.orderRepo.FindByShipment(ctx, id)
		if err != nil {
			return fmt.Errorf("load orders: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if len(linked) > 0 {
			return utils.ErrShipmentInUse
		}

		if _, err := s.shipmentRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete shipment: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if s.opts.ReserveVehicle && !shipment.Status.Closed() {
			if err := s.vehicleRepo.SetStatus(ctx, shipment.VehicleID, db_models.VehicleAvailable); err != nil {
				return fmt.Errorf("release vehicle: %w", errors.Join(utils.ErrDatabaseError, err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	publishAll(ctx, s.events, s.logger, LifecycleEvent{Type: EventShipmentDeleted, EntityID: id})
	return nil
}

func orderIDsOf(orders []db_models.Order) []uuid.UUID {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}
