package utils

import (
	"strings"
	"time"
)

const (
	DefaultDashboardDays = 30
	MaxDashboardDays     = 366
)

var intervals = map[string]bool{"day": true, "week": true, "month": true}

// ResolveLocation maps an IANA zone name to a location. Empty means UTC.
func ResolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, Invalid("tz", "unknown time zone")
	}
	return loc, nil
}

// NormalizeInterval defaults to "day" and rejects anything date_trunc should
// not see.
func NormalizeInterval(interval string) (string, error) {
	interval = strings.ToLower(strings.TrimSpace(interval))
	if interval == "" {
		return "day", nil
	}
	if !intervals[interval] {
		return "", Invalid("interval", "must be day, week or month")
	}
	return interval, nil
}

// LastDays returns the window of n days ending at end, clamped to
// [1, MaxDashboardDays]. n <= 0 means DefaultDashboardDays.
func LastDays(end time.Time, n int) (time.Time, time.Time) {
	switch {
	case n <= 0:
		n = DefaultDashboardDays
	case n > MaxDashboardDays:
		n = MaxDashboardDays
	}
	return end.AddDate(0, 0, -n), end
}
