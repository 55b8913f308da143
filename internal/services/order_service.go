package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/obs"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type OrderServiceInterface interface {
	List(ctx context.Context, actor Actor, status db_models.OrderStatus) ([]db_models.Order, error)
	Create(ctx context.Context, actor Actor, request request_models.CreateOrderRequest) (*db_models.Order, error)
	Verify(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error)
	Confirm(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error)
	Override(ctx context.Context, actor Actor, request request_models.UpdateOrderRequest) (*db_models.Order, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type OrderService struct {
	orderRepo   repositories.OrderRepository
	accountRepo repositories.AccountRepository
	tx          repositories.Transactor
	events      EventPublisher
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	accountRepo repositories.AccountRepository,
	tx repositories.Transactor,
	events EventPublisher,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		tx:          tx,
		events:      events,
		logger:      logger.Named("orders"),
	}
}

// List shows suppliers only the orders placed with them.
func (s *OrderService) List(ctx context.Context, actor Actor, status db_models.OrderStatus) ([]db_models.Order, error) {
	filter := repositories.OrderFilter{Status: status}
	if actor.Role.IsSupplier() {
		filter.AccountID = &actor.AccountID
	}
	orders, err := s.orderRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return orders, nil
}

func (s *OrderService) Create(ctx context.Context, actor Actor, request request_models.CreateOrderRequest) (*db_models.Order, error) {
	if len(request.Products) == 0 {
		return nil, utils.Invalid("products", "at least one line item is required")
	}

	accountID := actor.AccountID
	if request.AccountID != "" {
		id, err := uuid.Parse(request.AccountID)
		if err != nil {
			return nil, utils.Invalid("account_id", "must be a uuid")
		}
		accountID = id
	}

	exists, err := s.accountRepo.Exists(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("check account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if !exists {
		return nil, utils.NotFound("Account")
	}

	order := &db_models.Order{
		Products:    datatypes.NewJSONType(request_models.SnapshotLineItems(request.Products)),
		AccountID:   accountID,
		Destination: request.Destination,
		Status:      db_models.OrderPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return order, nil
}

// transition loads the order under a row lock, applies fn and saves the result
// in one transaction. The event is published only after commit.
func (s *OrderService) transition(ctx context.Context, id uuid.UUID, event string, fn func(o *db_models.Order) error) (*db_models.Order, error) {
	var (
		order *db_models.Order
		from  db_models.OrderStatus
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock order: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if order == nil {
			return utils.NotFound("Order")
		}
		from = order.Status
		if err := fn(order); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return fmt.Errorf("save order: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	obs.OrderTransition(string(from), string(order.Status))
	publishAll(ctx, s.events, s.logger, LifecycleEvent{
		Type:     event,
		EntityID: order.ID,
		From:     string(from),
		To:       string(order.Status),
	})
	return order, nil
}

func (s *OrderService) Verify(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error) {
	return s.transition(ctx, id, EventOrderVerified, func(o *db_models.Order) error {
		return o.Verify()
	})
}

func (s *OrderService) Confirm(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error) {
	return s.transition(ctx, id, EventOrderConfirmed, func(o *db_models.Order) error {
		if actor.Role.IsSupplier() && o.AccountID != actor.AccountID {
			return utils.ErrForbidden
		}
		return o.Confirm()
	})
}

func (s *OrderService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*db_models.Order, error) {
	return s.transition(ctx, id, EventOrderCancelled, func(o *db_models.Order) error {
		return o.Cancel()
	})
}

// Override patches an order without lifecycle guards. Line items can only be
// replaced while the order is still PENDING.
func (s *OrderService) Override(ctx context.Context, actor Actor, request request_models.UpdateOrderRequest) (*db_models.Order, error) {
	id, err := uuid.Parse(request.ID)
	if err != nil {
		return nil, utils.Invalid("id", "must be a uuid")
	}

	order, err := s.transition(ctx, id, EventOrderOverridden, func(o *db_models.Order) error {
		if len(request.Products) > 0 {
			if o.Status != db_models.OrderPending {
				return utils.Transition("order", o.ID.String(), "line items are frozen once "+string(o.Status))
			}
			o.Products = datatypes.NewJSONType(request_models.SnapshotLineItems(request.Products))
		}
		if request.Destination != nil {
			o.Destination = *request.Destination
		}
		if request.IsVerified != nil {
			o.IsVerified = *request.IsVerified
		}
		if request.VendorConfirmed != nil {
			o.VendorConfirmed = *request.VendorConfirmed
		}
		if request.Status != nil {
			o.Status = *request.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("order overridden",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("actor_id", actor.AccountID),
		zap.String("status", string(order.Status)),
		zap.Bool("is_verified", order.IsVerified),
		zap.Bool("vendor_confirmed", order.VendorConfirmed))
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock order: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if order == nil {
			return utils.NotFound("Order")
		}
		if order.ShipmentID != nil {
			return utils.Transition("order", order.ID.String(), "is linked to shipment "+order.ShipmentID.String())
		}
		if _, err := s.orderRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete order: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		return nil
	})
}
