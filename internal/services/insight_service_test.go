package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/pkg/utils"
)

type stubSummarizer struct {
	out    string
	err    error
	prompt string
}

func (s *stubSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func (s *stubSummarizer) Provider() string { return "stub" }

func TestDescribeOrder(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	shipmentID := uuid.New()
	shipments := map[uuid.UUID]db_models.Shipment{
		shipmentID: {BaseModel: db_models.BaseModel{ID: shipmentID}, Start: &start, Destination: "North Wing"},
	}

	o := db_models.Order{
		Products: datatypes.NewJSONType([]db_models.OrderLineItem{
			{Name: "Saline 0.9%"}, {Name: ""},
		}),
		Destination: "ICU",
		ShipmentID:  &shipmentID,
	}
	assert.Equal(t,
		"Order with products: Saline 0.9%, a product, going to ICU. Shipment started on 2025-03-14 to North Wing.",
		DescribeOrder(o, shipments))

	bare := db_models.Order{Destination: "Pharmacy"}
	assert.Equal(t, "Order with products: unknown products, going to Pharmacy.", DescribeOrder(bare, nil))
}

func TestBuildInsightPromptDefaultsQuery(t *testing.T) {
	p := BuildInsightPrompt("ctx line", "  ")
	assert.Contains(t, p, "ctx line")
	assert.Contains(t, p, defaultInsightQuery)
}

func newInsightFixture(t *testing.T, sum *stubSummarizer) (*fixture, InsightServiceInterface, db_models.Account) {
	t.Helper()
	f := newFixture()
	staff := f.addAccount(db_models.RoleStaff)
	f.addOrder(staff.ID, db_models.OrderPending)

	var summarizer utils.Summarizer
	if sum != nil {
		summarizer = sum
	}
	svc := NewInsightService(f.accounts, f.orders, f.shipments, summarizer, time.Second, f.logger)
	return f, svc, staff
}

func TestInsightsUsesProviderText(t *testing.T) {
	sum := &stubSummarizer{out: "Ward 3 orders dominate."}
	_, svc, staff := newInsightFixture(t, sum)

	res, err := svc.Insights(context.Background(), request_models.PromptRequest{Email: staff.Email, Query: "What is trending?"})
	require.NoError(t, err)
	assert.Equal(t, "Ward 3 orders dominate.", res.Result)
	assert.Equal(t, "stub", res.Provider)
	assert.False(t, res.Fallback)
	assert.Contains(t, sum.prompt, "going to Ward 3")
	assert.Contains(t, sum.prompt, "What is trending?")
}

func TestInsightsFallsBackToContext(t *testing.T) {
	tests := []struct {
		name string
		sum  *stubSummarizer
	}{
		{"provider error", &stubSummarizer{err: errors.New("quota exceeded")}},
		{"empty answer", &stubSummarizer{out: "   "}},
		{"no provider", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc, staff := newInsightFixture(t, tt.sum)

			res, err := svc.Insights(context.Background(), request_models.PromptRequest{Email: staff.Email})
			require.NoError(t, err)
			assert.True(t, res.Fallback)
			assert.Equal(t, "Order with products: unknown products, going to Ward 3.", res.Result)
		})
	}
}

func TestInsightsUnknownEmail(t *testing.T) {
	_, svc, _ := newInsightFixture(t, &stubSummarizer{out: "x"})

	_, err := svc.Insights(context.Background(), request_models.PromptRequest{Email: "ghost@hospital.test"})
	assert.EqualError(t, err, "Account Not Found")
}
