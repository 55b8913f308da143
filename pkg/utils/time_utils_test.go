package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation(t *testing.T) {
	loc, err := ResolveLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = ResolveLocation("Mars/Olympus")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "tz", ve.Field)
}

func TestNormalizeInterval(t *testing.T) {
	got, err := NormalizeInterval("")
	require.NoError(t, err)
	assert.Equal(t, "day", got)

	got, err = NormalizeInterval(" Month ")
	require.NoError(t, err)
	assert.Equal(t, "month", got)

	_, err = NormalizeInterval("hour'); DROP TABLE orders;--")
	assert.Error(t, err)
}

func TestLastDaysClamps(t *testing.T) {
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	start, _ := LastDays(end, 0)
	assert.Equal(t, end.AddDate(0, 0, -DefaultDashboardDays), start)

	start, _ = LastDays(end, 10000)
	assert.Equal(t, end.AddDate(0, 0, -MaxDashboardDays), start)
}
