package mem

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	stepUpNamespace  = "stepup:used"
	attemptNamespace = "stepup:tries"
)

type Cache struct {
	client redis.UniversalClient // works with both single and cluster
}

func NewCache(addrs []string, password string, useCluster bool) *Cache {
	var rdb redis.UniversalClient

	if useCluster && len(addrs) > 1 {
		rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Password: password,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addrs[0],
			Password: password,
			DB:       0,
		})
	}

	return &Cache{client: rdb}
}

func NewCacheFromClient(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

func (c *Cache) SetNX(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, namespace+":"+key, value, ttl).Result()
}

// Incr bumps a counter and (re)arms its expiry in one round trip.
func (c *Cache) Incr(ctx context.Context, namespace, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, namespace+":"+key)
		pipe.Expire(ctx, namespace+":"+key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// RedisLedger shares step-up usage across instances.
type RedisLedger struct {
	cache *Cache
}

func NewRedisLedger(cache *Cache) *RedisLedger {
	return &RedisLedger{cache: cache}
}

func (l *RedisLedger) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return l.cache.SetNX(ctx, stepUpNamespace, jti, 1, ttl)
}

func (l *RedisLedger) RecordAttempt(ctx context.Context, jti string, ttl time.Duration) (int64, error) {
	return l.cache.Incr(ctx, attemptNamespace, jti, ttl)
}
