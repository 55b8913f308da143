package catalog_fx

import (
	"go.uber.org/fx"

	"hospilog/internal/repositories"
	"hospilog/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		repositories.NewProductRepository,
		repositories.NewVehicleRepository,
		repositories.NewCertificateRepository,
		repositories.NewInvoiceRepository,
	),
	fx.Provide(
		services.NewProductService,
		services.NewVehicleService,
		services.NewCertificateService,
		services.NewInvoiceService,
	),
)
