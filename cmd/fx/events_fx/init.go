package events_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/infra"
	"hospilog/internal/services"
)

var Module = fx.Provide(providePublisher)

func providePublisher(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (services.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return services.NewLogPublisher(logger), nil
	}

	producer, err := infra.NewKafkaProducer(cfg.Kafka, services.NewKafkaProducerConfig())
	if err != nil {
		return nil, err
	}
	pub := services.NewKafkaPublisher(producer, cfg.Kafka.Topic, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	logger.Info("lifecycle events: kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	return pub, nil
}
