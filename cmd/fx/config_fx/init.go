package config_fx

import (
	"go.uber.org/fx"

	"hospilog/internal/config"
)

var Module = fx.Provide(config.Load)
