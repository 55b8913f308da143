package order_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hospilog/internal/repositories"
	"hospilog/internal/services"
)

var Module = fx.Provide(
	provideOrderRepo, services.NewOrderService)

func provideOrderRepo(db *gorm.DB) repositories.OrderRepository {
	return repositories.NewOrderRepository(db)
}
