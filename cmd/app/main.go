package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"hospilog/cmd/fx/account_fx"
	"hospilog/cmd/fx/catalog_fx"
	"hospilog/cmd/fx/config_fx"
	"hospilog/cmd/fx/controllers_fx"
	"hospilog/cmd/fx/dashboard"
	"hospilog/cmd/fx/db_fx"
	"hospilog/cmd/fx/events_fx"
	"hospilog/cmd/fx/logger_fx"
	"hospilog/cmd/fx/mail_fx"
	"hospilog/cmd/fx/memcache_fx"
	"hospilog/cmd/fx/order_fx"
	"hospilog/cmd/fx/prompt_fx"
	"hospilog/cmd/fx/shipment_fx"
	"hospilog/cmd/fx/upload_fx"
	"hospilog/cmd/fx/user_fx"
	"hospilog/internal/config"
	"hospilog/internal/obs"
	"hospilog/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		events_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		order_fx.Module,
		shipment_fx.Module,
		catalog_fx.Module,
		user_fx.Module,
		prompt_fx.Module,
		upload_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRateLimiter),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	lim := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go lim.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return lim
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("base_path", cfg.HTTP.BasePath))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func init() {
	obs.Init()
}
