package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaPublisherKeysByEntity(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisher(producer, "hospilog.lifecycle", zap.NewNop())
	defer pub.Close()

	evt := LifecycleEvent{
		Type:     EventOrderVerified,
		EntityID: uuid.New(),
		From:     "PENDING",
		To:       "VERIFIED",
		At:       time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "hospilog.lifecycle" {
			return fmt.Errorf("topic %q", msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != evt.EntityID.String() {
			return fmt.Errorf("key %q", key)
		}
		raw, _ := msg.Value.Encode()
		var got LifecycleEvent
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got.Type != evt.Type || got.To != "VERIFIED" {
			return fmt.Errorf("payload %+v", got)
		}
		return nil
	})

	require.NoError(t, pub.Publish(context.Background(), evt))
}

func TestKafkaPublisherSurfacesBrokerErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisher(producer, "hospilog.lifecycle", zap.NewNop())
	defer pub.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	err := pub.Publish(context.Background(), LifecycleEvent{Type: EventShipmentCreated, EntityID: uuid.New()})
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
}

func TestPublishAllNeverFailsTheCaller(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker gone")}
	publishAll(context.Background(), pub, zap.NewNop(), LifecycleEvent{Type: EventOrderCancelled})
	assert.Empty(t, pub.events)

	ok := &recordingPublisher{}
	publishAll(context.Background(), ok, zap.NewNop(), LifecycleEvent{Type: EventOrderCancelled})
	require.Len(t, ok.events, 1)
	assert.False(t, ok.events[0].At.IsZero())

	publishAll(context.Background(), nil, zap.NewNop(), LifecycleEvent{Type: EventOrderCancelled})
}
