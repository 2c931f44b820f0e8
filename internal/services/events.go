package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/honeynil/boost-wallet/internal/infrastructure/kafka"
	"github.com/honeynil/boost-wallet/internal/models"
)

const DefaultEventsTopic = "wallet-events"

// EventPublisher writes wallet events to Kafka. A failed publish is logged and
// never fails the ledger operation that produced it.
type EventPublisher struct {
	producer kafka.KafkaProducer
	topic    string
}

// NewEventPublisher accepts a nil producer, in which case events are dropped.
func NewEventPublisher(producer kafka.KafkaProducer, topic string) *EventPublisher {
	if topic == "" {
		topic = DefaultEventsTopic
	}
	return &EventPublisher{producer: producer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, event models.WalletEvent) {
	if p == nil || p.producer == nil {
		return
	}
	if event.CreatedAt == "" {
		event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal wallet event", "event_type", event.EventType, "user_id", event.UserID, "error", err)
		return
	}
	if err := p.producer.Send(context.WithoutCancel(ctx), p.topic, event.UserID, eventBytes); err != nil {
		slog.Error("failed to publish wallet event",
			"event_type", event.EventType,
			"user_id", event.UserID,
			"reference_id", event.ReferenceID,
			"error", err)
		return
	}
	slog.Info("wallet event published", "event_type", event.EventType, "user_id", event.UserID, "reference_id", event.ReferenceID)
}
