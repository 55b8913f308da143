package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalAccounts    int64   `json:"total_accounts"`
	NewAccounts      int64   `json:"new_accounts"`
	TotalOrders      int64   `json:"total_orders"`
	OpenOrders       int64   `json:"open_orders"`
	ActiveShipments  int64   `json:"active_shipments"`
	VehiclesInUse    int64   `json:"vehicles_in_use"`
	OutstandingTotal float64 `json:"outstanding_invoice_total"`
	PaidTotal        float64 `json:"paid_invoice_total"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type StatusBreakdown map[string]int64

type DashboardReport struct {
	Range            TimeRange          `json:"range"`
	KPIs             KPIBlock           `json:"kpis"`
	AccountsByRole   StatusBreakdown    `json:"accounts_by_role"`
	OrdersByStatus   StatusBreakdown    `json:"orders_by_status"`
	ShipmentsByState StatusBreakdown    `json:"shipments_by_status"`
	VehiclesByStatus StatusBreakdown    `json:"vehicles_by_status"`
	InvoiceTotals    map[string]float64 `json:"invoice_totals"`
	NewOrders        CountSeries        `json:"new_orders"`
	TopDestinations  []TopDestination   `json:"top_destinations"`
}

type TopDestination struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}
