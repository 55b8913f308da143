package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventOrderVerified     = "order.verified"
	EventOrderConfirmed    = "order.confirmed"
	EventOrderCancelled    = "order.cancelled"
	EventOrderOverridden   = "order.overridden"
	EventShipmentCreated   = "shipment.created"
	EventShipmentStatus    = "shipment.status_changed"
	EventShipmentDeleted   = "shipment.deleted"
	EventAccountRegistered = "account.registered"
)

type LifecycleEvent struct {
	Type     string      `json:"type"`
	EntityID uuid.UUID   `json:"entity_id"`
	From     string      `json:"from,omitempty"`
	To       string      `json:"to,omitempty"`
	ActorID  *uuid.UUID  `json:"actor_id,omitempty"`
	Orders   []uuid.UUID `json:"orders,omitempty"`
	At       time.Time   `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt LifecycleEvent) error
}

// KafkaPublisher writes lifecycle events to one topic keyed by entity id, so
// every event for an order or shipment lands on the same partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewKafkaProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger.Named("events")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt LifecycleEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(evt.EntityID.String()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(evt.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	p.logger.Debug("event sent",
		zap.String("type", evt.Type),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, evt LifecycleEvent) error {
	p.logger.Info("lifecycle event",
		zap.String("type", evt.Type),
		zap.Stringer("entity_id", evt.EntityID),
		zap.String("from", evt.From),
		zap.String("to", evt.To))
	return nil
}

// publishAll runs after commit; a failed publish never undoes the mutation.
func publishAll(ctx context.Context, pub EventPublisher, logger *zap.Logger, events ...LifecycleEvent) {
	if pub == nil {
		return
	}
	for _, evt := range events {
		if evt.At.IsZero() {
			evt.At = time.Now().UTC()
		}
		if err := pub.Publish(ctx, evt); err != nil {
			logger.Warn("publish lifecycle event", zap.String("type", evt.Type), zap.Error(err))
		}
	}
}
