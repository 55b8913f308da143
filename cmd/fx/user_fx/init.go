package user_fx

import (
	"go.uber.org/fx"

	"hospilog/internal/services"
)

var Module = fx.Provide(services.NewUserService)
