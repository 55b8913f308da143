package controllers_fx

import (
	"go.uber.org/fx"

	"hospilog/internal/api/controllers"
	"hospilog/internal/config"
)

var Module = fx.Options(
	fx.Provide(provideSessionCookie),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewOrderController),
	fx.Provide(controllers.NewShipmentController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewVehicleController),
	fx.Provide(controllers.NewCertificateController),
	fx.Provide(controllers.NewInvoiceController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewSettingsController),
	fx.Provide(controllers.NewUploadController),
	fx.Provide(controllers.NewDashboardController))

func provideSessionCookie(cfg *config.Config) controllers.SessionCookie {
	return controllers.SessionCookie{
		Name:   cfg.Auth.CookieName,
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.CookieSecure,
		MaxAge: cfg.Auth.SessionTTL,
	}
}
