package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "hospilog/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountGrouped(ctx context.Context, table, column string) ([]GroupCount, error)
	SumInvoicesByStatus(ctx context.Context) ([]GroupSum, error)

	// Time series
	NewOrdersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	TopDestinations(ctx context.Context, start, end time.Time, limit int) ([]DestinationRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

type GroupSum struct {
	Key   string  `gorm:"column:key"`
	Total float64 `gorm:"column:total"`
}

type DestinationRow struct {
	Destination string `gorm:"column:destination"`
	Count       int64  `gorm:"column:count"`
}

// groupable whitelists the table/column pairs CountGrouped may touch.
var groupable = map[string]map[string]bool{
	"accounts":  {"role": true},
	"orders":    {"status": true},
	"shipments": {"status": true},
	"vehicles":  {"status": true},
}

// ---------- Helpers ----------
func dateTrunc(tz string, unixColumn string) string {
	// unixColumn holds UNIX seconds, e.g. date_trunc('day', timezone('UTC', to_timestamp(created_at)))
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func truncArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountGrouped(ctx context.Context, table, column string) ([]GroupCount, error) {
	if !groupable[table][column] {
		return nil, gorm.ErrInvalidField
	}
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Table(table).
		Select(column + " AS key, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group(column).
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) SumInvoicesByStatus(ctx context.Context) ([]GroupSum, error) {
	var rows []GroupSum
	err := r.db.WithContext(ctx).
		Model(&dbm.Invoice{}).
		Select("status AS key, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Find(&rows).Error
	return rows, err
}

// ---------- Series ----------
func (r *dashboardRepository) NewOrdersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("orders").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", truncArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) TopDestinations(ctx context.Context, start, end time.Time, limit int) ([]DestinationRow, error) {
	var rows []DestinationRow
	err := r.db.WithContext(ctx).
		Table("shipments").
		Select("destination, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Where("destination <> ''").
		Group("destination").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
