package infra

import (
	"fmt"

	"github.com/IBM/sarama"

	"hospilog/internal/config"
)

func NewKafkaProducer(cfg config.KafkaConfig, sc *sarama.Config) (sarama.SyncProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}
