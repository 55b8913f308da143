package mem

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLedger(t *testing.T) (*RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLedger(NewCacheFromClient(client)), srv
}

func TestRedisLedgerRejectsReplay(t *testing.T) {
	ledger, srv := newTestRedisLedger(t)
	ctx := context.Background()

	first, err := ledger.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := ledger.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	assert.True(t, srv.Exists("stepup:used:jti-1"))
	assert.Equal(t, time.Minute, srv.TTL("stepup:used:jti-1"))

	srv.FastForward(2 * time.Minute)
	ok, err := ledger.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLedgerCountsAttempts(t *testing.T) {
	ledger, srv := newTestRedisLedger(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := ledger.RecordAttempt(ctx, "jti-1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, time.Minute, srv.TTL("stepup:tries:jti-1"))

	srv.FastForward(2 * time.Minute)
	n, err := ledger.RecordAttempt(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisLedgerSurfacesOutage(t *testing.T) {
	ledger, srv := newTestRedisLedger(t)
	srv.Close()

	_, err := ledger.MarkUsed(context.Background(), "jti-1", time.Minute)
	assert.Error(t, err)
}
