package upload_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/services"
)

var Module = fx.Provide(provideUploadService)

func provideUploadService(cfg *config.Config, logger *zap.Logger) (services.UploadServiceInterface, error) {
	return services.NewUploadService(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, cfg.HTTP.PublicURL+cfg.HTTP.BasePath, logger)
}
