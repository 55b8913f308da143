package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type fakeDashboardRepo struct {
	grouped map[string][]repositories.GroupCount
	sums    []repositories.GroupSum
	err     error

	seriesArgs []any
}

func (r *fakeDashboardRepo) CountTotalAccounts(context.Context) (int64, error) { return 12, r.err }

func (r *fakeDashboardRepo) CountNewAccounts(context.Context, time.Time, time.Time) (int64, error) {
	return 3, nil
}

func (r *fakeDashboardRepo) CountGrouped(_ context.Context, table, _ string) ([]repositories.GroupCount, error) {
	return r.grouped[table], nil
}

func (r *fakeDashboardRepo) SumInvoicesByStatus(context.Context) ([]repositories.GroupSum, error) {
	return r.sums, nil
}

func (r *fakeDashboardRepo) NewOrdersSeries(_ context.Context, start, end time.Time, interval, tz string) ([]repositories.BucketSum, error) {
	r.seriesArgs = []any{start, end, interval, tz}
	return []repositories.BucketSum{{Bucket: start, Sum: 4}}, nil
}

func (r *fakeDashboardRepo) TopDestinations(context.Context, time.Time, time.Time, int) ([]repositories.DestinationRow, error) {
	return []repositories.DestinationRow{{Destination: "ICU", Count: 5}}, nil
}

func newTestDashboard(repo repositories.DashboardRepository) *dashboardService {
	return &dashboardService{
		repo: repo,
		now:  func() time.Time { return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC) },
	}
}

func TestBuildDashboardKPIs(t *testing.T) {
	repo := &fakeDashboardRepo{
		grouped: map[string][]repositories.GroupCount{
			"orders": {
				{Key: "PENDING", Count: 2}, {Key: "SHIPPED", Count: 3},
				{Key: "DELIVERED", Count: 7}, {Key: "CANCELLED", Count: 1},
			},
			"shipments": {{Key: "PENDING", Count: 1}, {Key: "IN_TRANSIT", Count: 2}, {Key: "DELIVERED", Count: 9}},
			"vehicles":  {{Key: "IN_USE", Count: 2}, {Key: "AVAILABLE", Count: 4}},
		},
		sums: []repositories.GroupSum{
			{Key: "PENDING", Total: 100}, {Key: "OVERDUE", Total: 50.5}, {Key: "PAID", Total: 900},
		},
	}

	report, err := newTestDashboard(repo).BuildDashboard(context.Background(), 7, "", "")
	require.NoError(t, err)

	k := report.KPIs
	assert.Equal(t, int64(12), k.TotalAccounts)
	assert.Equal(t, int64(3), k.NewAccounts)
	assert.Equal(t, int64(13), k.TotalOrders)
	assert.Equal(t, int64(5), k.OpenOrders)
	assert.Equal(t, int64(3), k.ActiveShipments)
	assert.Equal(t, int64(2), k.VehiclesInUse)
	assert.InDelta(t, 150.5, k.OutstandingTotal, 1e-9)
	assert.InDelta(t, 900, k.PaidTotal, 1e-9)

	assert.Equal(t, "day", report.Range.Interval)
	assert.Equal(t, time.Date(2025, 6, 23, 12, 0, 0, 0, time.UTC), report.Range.Start)
	assert.Equal(t, "day", repo.seriesArgs[2])
	require.Len(t, report.NewOrders.Points, 1)
	assert.Equal(t, int64(4), report.NewOrders.Points[0].Value)
	assert.Equal(t, "ICU", report.TopDestinations[0].Destination)
}

func TestBuildDashboardRejectsBadInput(t *testing.T) {
	svc := newTestDashboard(&fakeDashboardRepo{})

	_, err := svc.BuildDashboard(context.Background(), 30, "hour", "")
	var ve *utils.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = svc.BuildDashboard(context.Background(), 30, "week", "Mars/Olympus")
	assert.True(t, errors.As(err, &ve))
}

func TestBuildDashboardWrapsRepositoryErrors(t *testing.T) {
	svc := newTestDashboard(&fakeDashboardRepo{err: errors.New("conn refused")})

	_, err := svc.BuildDashboard(context.Background(), 0, "month", "Europe/Lisbon")
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}
