package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbm "hospilog/internal/models/db_models"
	resp "hospilog/internal/models/response_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, lastDays int, interval, tz string) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

// normalizeRange validates the query and fills defaults.
func normalizeRange(now time.Time, lastDays int, interval, tz string) (resp.TimeRange, error) {
	interval, err := utils.NormalizeInterval(interval)
	if err != nil {
		return resp.TimeRange{}, err
	}
	loc, err := utils.ResolveLocation(tz)
	if err != nil {
		return resp.TimeRange{}, err
	}
	start, end := utils.LastDays(now.In(loc), lastDays)
	return resp.TimeRange{Start: start, End: end, Interval: interval, Timezone: tz}, nil
}

func breakdown(rows []repositories.GroupCount) resp.StatusBreakdown {
	out := make(resp.StatusBreakdown, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out
}

func sumExcept(b resp.StatusBreakdown, skip ...string) int64 {
	var total int64
outer:
	for k, v := range b {
		for _, s := range skip {
			if k == s {
				continue outer
			}
		}
		total += v
	}
	return total
}

func (s *dashboardService) BuildDashboard(ctx context.Context, lastDays int, interval, tz string) (*resp.DashboardReport, error) {
	rng, err := normalizeRange(s.now(), lastDays, interval, tz)
	if err != nil {
		return nil, err
	}
	dbErr := func(what string, err error) error {
		return fmt.Errorf("dashboard %s: %w", what, errors.Join(utils.ErrDatabaseError, err))
	}

	// ---------- Core counts ----------
	totalAccounts, err := s.repo.CountTotalAccounts(ctx)
	if err != nil {
		return nil, dbErr("accounts", err)
	}
	newAccounts, err := s.repo.CountNewAccounts(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, dbErr("new accounts", err)
	}

	grouped := map[string]resp.StatusBreakdown{}
	for _, g := range []struct{ table, column string }{
		{"accounts", "role"},
		{"orders", "status"},
		{"shipments", "status"},
		{"vehicles", "status"},
	} {
		rows, err := s.repo.CountGrouped(ctx, g.table, g.column)
		if err != nil {
			return nil, dbErr(g.table, err)
		}
		grouped[g.table] = breakdown(rows)
	}

	invoiceRows, err := s.repo.SumInvoicesByStatus(ctx)
	if err != nil {
		return nil, dbErr("invoices", err)
	}
	invoiceTotals := make(map[string]float64, len(invoiceRows))
	for _, r := range invoiceRows {
		invoiceTotals[r.Key] = r.Total
	}

	// ---------- Series ----------
	seriesRows, err := s.repo.NewOrdersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, dbErr("order series", err)
	}
	points := make([]resp.SeriesPoint, 0, len(seriesRows))
	for _, r := range seriesRows {
		points = append(points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	// ---------- Top destinations ----------
	destRows, err := s.repo.TopDestinations(ctx, rng.Start, rng.End, 10)
	if err != nil {
		return nil, dbErr("destinations", err)
	}
	topDestinations := make([]resp.TopDestination, 0, len(destRows))
	for _, r := range destRows {
		topDestinations = append(topDestinations, resp.TopDestination{Destination: r.Destination, Count: r.Count})
	}

	orders := grouped["orders"]
	shipments := grouped["shipments"]
	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalAccounts: totalAccounts,
			NewAccounts:   newAccounts,
			TotalOrders:   sumExcept(orders),
			OpenOrders:    sumExcept(orders, string(dbm.OrderDelivered), string(dbm.OrderCancelled)),
			ActiveShipments: sumExcept(shipments,
				string(dbm.ShipmentDelivered), string(dbm.ShipmentCancelled)),
			VehiclesInUse:    grouped["vehicles"][string(dbm.VehicleInUse)],
			OutstandingTotal: invoiceTotals[string(dbm.InvoicePending)] + invoiceTotals[string(dbm.InvoiceOverdue)],
			PaidTotal:        invoiceTotals[string(dbm.InvoicePaid)],
		},
		AccountsByRole:   grouped["accounts"],
		OrdersByStatus:   orders,
		ShipmentsByState: shipments,
		VehiclesByStatus: grouped["vehicles"],
		InvoiceTotals:    invoiceTotals,
		NewOrders:        resp.CountSeries{Points: points},
		TopDestinations:  topDestinations,
	}, nil
}
