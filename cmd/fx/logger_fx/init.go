package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/infra"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	// HandleServiceError logs through the global logger.
	zap.ReplaceGlobals(logger)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}
