package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	mem "hospilog/pkg/memcache"
)

var Module = fx.Provide(provideStepUpLedger)

// provideStepUpLedger shares used step-up tokens through Redis when it is
// configured, otherwise keeps them in process memory.
func provideStepUpLedger(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) mem.StepUpLedger {
	if len(cfg.Redis.Addrs) == 0 {
		logger.Info("step-up ledger: in memory")
		return mem.NewUsedTokens()
	}

	cache := mem.NewCache(cfg.Redis.Addrs, cfg.Redis.Password, cfg.Redis.Cluster)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.Ping(ctx); err != nil {
				return err
			}
			logger.Info("step-up ledger: redis", zap.Strings("addrs", cfg.Redis.Addrs))
			return nil
		},
		OnStop: func(context.Context) error {
			return cache.Close()
		},
	})
	return mem.NewRedisLedger(cache)
}
