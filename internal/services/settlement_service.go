package service

import (
	"context"
	"fmt"
	"log/slog"

	stderrors "errors"

	"github.com/honeynil/boost-wallet/internal/infrastructure/observability"
	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/honeynil/boost-wallet/internal/repository"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type SettlementService interface {
	// SettlePurchase debits amount for orderID and records a purchase entry.
	// Joins the caller's transaction when ctx carries one.
	SettlePurchase(ctx context.Context, userID int64, amount decimal.Decimal, orderID string) (decimal.Decimal, error)
}

type settlementService struct {
	wallets      WalletService
	transactions repository.TransactionRepository
	tx           repository.Transactor
	events       *EventPublisher
}

func NewSettlementService(
	wallets WalletService,
	transactions repository.TransactionRepository,
	tx repository.Transactor,
	events *EventPublisher,
) *settlementService {
	return &settlementService{
		wallets:      wallets,
		transactions: transactions,
		tx:           tx,
		events:       events,
	}
}

func (s *settlementService) SettlePurchase(ctx context.Context, userID int64, amount decimal.Decimal, orderID string) (decimal.Decimal, error) {
	ctx, span := otel.Tracer("settlement-service").Start(ctx, "SettlePurchase")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.String("amount", amount.String()),
		attribute.String("order_id", orderID),
	)

	if !amount.IsPositive() {
		span.SetStatus(codes.Error, "non-positive amount")
		return decimal.Zero, fmt.Errorf("%w: purchase amount must be positive", pkgerrors.ErrInvalidAmount)
	}
	if amount.GreaterThan(models.MaxAmount) {
		span.SetStatus(codes.Error, "amount above maximum")
		return decimal.Zero, fmt.Errorf("%w: purchase amount exceeds $%s", pkgerrors.ErrInvalidAmount, models.MaxAmount.StringFixed(2))
	}
	if orderID == "" {
		span.SetStatus(codes.Error, "missing order id")
		return decimal.Zero, fmt.Errorf("%w: missing order id", pkgerrors.ErrInvalidOrder)
	}
	amount = amount.Round(2)

	var balance decimal.Decimal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.wallets.GetOrCreateWallet(ctx, userID)
		if err != nil {
			return err
		}
		if w.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, required %s",
				pkgerrors.ErrInsufficientBalance, w.Balance.StringFixed(2), amount.StringFixed(2))
		}

		balance, err = s.wallets.AdjustBalance(ctx, userID, amount.Neg())
		if err != nil {
			return err
		}

		ref := orderID
		if _, err := s.transactions.Create(ctx, &models.Transaction{
			UserID:      userID,
			Type:        models.TypePurchase,
			Amount:      amount.Neg(),
			Description: fmt.Sprintf("Purchase of services for $%s", amount.StringFixed(2)),
			ReferenceID: &ref,
		}); err != nil {
			return err
		}

		s.tx.AfterCommit(ctx, func() {
			s.events.Publish(ctx, models.WalletEvent{
				EventType:   models.EventPurchaseSettled,
				UserID:      userID,
				ReferenceID: orderID,
				Amount:      amount.Neg(),
				Balance:     &balance,
			})
		})
		return nil
	})
	if err != nil {
		outcome := "failed"
		if stderrors.Is(err, pkgerrors.ErrInsufficientBalance) {
			outcome = "insufficient_balance"
		}
		observability.SettlementsTotal.WithLabelValues(outcome).Inc()
		slog.Error("failed to settle purchase", "user_id", userID, "order_id", orderID, "amount", amount.String(), "error", err)
		return decimal.Zero, failSpan(span, err, "settle purchase failed")
	}

	observability.SettlementsTotal.WithLabelValues("settled").Inc()
	slog.Info("purchase settled", "user_id", userID, "order_id", orderID, "amount", amount.String(), "balance", balance.String())
	return balance, nil
}
