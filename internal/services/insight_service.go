package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/models/response_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

const defaultInsightQuery = "Analyze my orders and provide insights."

type InsightServiceInterface interface {
	Insights(ctx context.Context, request request_models.PromptRequest) (*response_models.InsightResponse, error)
}

type InsightService struct {
	accountRepo  repositories.AccountRepository
	orderRepo    repositories.OrderRepository
	shipmentRepo repositories.ShipmentRepository
	summarizer   utils.Summarizer
	timeout      time.Duration
	logger       *zap.Logger
}

// NewInsightService accepts a nil summarizer; every answer is then the raw
// logistics context.
func NewInsightService(
	accountRepo repositories.AccountRepository,
	orderRepo repositories.OrderRepository,
	shipmentRepo repositories.ShipmentRepository,
	summarizer utils.Summarizer,
	timeout time.Duration,
	logger *zap.Logger,
) InsightServiceInterface {
	return &InsightService{
		accountRepo:  accountRepo,
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		summarizer:   summarizer,
		timeout:      timeout,
		logger:       logger.Named("insights"),
	}
}

func (s *InsightService) Insights(ctx context.Context, request request_models.PromptRequest) (*response_models.InsightResponse, error) {
	if strings.TrimSpace(request.Email) == "" {
		return nil, utils.Invalid("email", "is required")
	}
	account, err := s.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	if account == nil {
		return nil, utils.NotFound("Account")
	}

	logistics, err := s.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	fallback := &response_models.InsightResponse{Result: logistics, Fallback: true}
	if s.summarizer == nil {
		return fallback, nil
	}
	fallback.Provider = s.summarizer.Provider()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.summarizer.Summarize(callCtx, BuildInsightPrompt(logistics, request.Query))
	if err != nil {
		s.logger.Warn("summarizer failed, returning raw context",
			zap.String("provider", s.summarizer.Provider()), zap.Error(err))
		return fallback, nil
	}
	if strings.TrimSpace(text) == "" {
		return fallback, nil
	}

	return &response_models.InsightResponse{
		Result:   text,
		Provider: s.summarizer.Provider(),
	}, nil
}

func (s *InsightService) buildContext(ctx context.Context) (string, error) {
	orders, err := s.orderRepo.Search(ctx, repositories.OrderFilter{})
	if err != nil {
		return "", fmt.Errorf("list orders: %w", errors.Join(utils.ErrDatabaseError, err))
	}

	var ids []uuid.UUID
	for _, o := range orders {
		if o.ShipmentID != nil {
			ids = append(ids, *o.ShipmentID)
		}
	}
	shipments, err := s.shipmentRepo.FindByIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("load shipments: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	byID := make(map[uuid.UUID]db_models.Shipment, len(shipments))
	for _, sh := range shipments {
		byID[sh.ID] = sh
	}

	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		lines = append(lines, DescribeOrder(o, byID))
	}
	return strings.Join(lines, "\n"), nil
}

// DescribeOrder renders one order as a line of plain prose for the model.
func DescribeOrder(o db_models.Order, shipments map[uuid.UUID]db_models.Shipment) string {
	items := o.LineItems()
	products := "unknown products"
	if len(items) > 0 {
		names := make([]string, 0, len(items))
		for _, it := range items {
			name := it.Name
			if name == "" {
				name = "a product"
			}
			names = append(names, name)
		}
		products = strings.Join(names, ", ")
	}

	line := fmt.Sprintf("Order with products: %s, going to %s.", products, o.Destination)
	if o.ShipmentID != nil {
		if sh, ok := shipments[*o.ShipmentID]; ok {
			started := "an unscheduled date"
			if sh.Start != nil {
				started = sh.Start.Format("2006-01-02")
			}
			line += fmt.Sprintf(" Shipment started on %s to %s.", started, sh.Destination)
		}
	}
	return line
}

func BuildInsightPrompt(orderContext, userQuery string) string {
	query := strings.TrimSpace(userQuery)
	if query == "" {
		query = defaultInsightQuery
	}

	return fmt.Sprintf(`You are a hospital logistics assistant. Use only the context below to answer.

Context:
%s

User query:
%s

Instructions:
- Only respond about logistics (no finance).
- Analyze product demand, destinations, shipment timing, etc.
- Provide summary and predictions if possible.
`, orderContext, query)
}
