package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/segmentio/kafka-go"
)

// Reconciler re-checks a user's wallet against the ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, userID int64) (*models.ReconcileReport, error)
}

type Consumer struct {
	reader     *kafka.Reader
	reconciler Reconciler
}

func NewConsumer(brokers []string, topic, groupID string, reconciler Reconciler) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		reconciler: reconciler,
	}
}

// Consume blocks until ctx is cancelled.
func (c *Consumer) Consume(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("failed to read Kafka message", "topic", c.reader.Config().Topic, "error", err)
			continue
		}

		if err := HandleMessage(ctx, c.reconciler, msg); err != nil {
			slog.Error("failed to handle wallet event", "offset", msg.Offset, "key", string(msg.Key), "error", err)
		}
	}
}

// HandleMessage reconciles the wallet the event refers to. Deposit creation
// and rejection do not touch balances and are skipped.
func HandleMessage(ctx context.Context, reconciler Reconciler, msg kafka.Message) error {
	var event models.WalletEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal wallet event: %w", err)
	}
	if event.UserID == 0 {
		return stderrors.New("wallet event without user_id")
	}

	switch event.EventType {
	case models.EventDepositApproved, models.EventPurchaseSettled:
	case models.EventDepositCreated, models.EventDepositRejected:
		slog.Debug("wallet event skipped", "event_type", event.EventType, "reference_id", event.ReferenceID)
		return nil
	default:
		return fmt.Errorf("unknown event type %q", event.EventType)
	}

	report, err := reconciler.Reconcile(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to reconcile user %d: %w", event.UserID, err)
	}
	if !report.Consistent {
		slog.Warn("ledger drift detected",
			"user_id", report.UserID,
			"balance", report.Balance.String(),
			"ledger_sum", report.LedgerSum.String(),
			"reference_id", event.ReferenceID,
		)
		return nil
	}
	slog.Info("wallet reconciled", "user_id", report.UserID, "event_type", event.EventType, "reference_id", event.ReferenceID)
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
