package service

import (
	"context"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/infrastructure/observability"
	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/honeynil/boost-wallet/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ReconciliationService checks that a wallet balance equals the signed sum of
// the user's ledger entries.
type ReconciliationService interface {
	Reconcile(ctx context.Context, userID int64) (*models.ReconcileReport, error)
}

type reconciliationService struct {
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	tx           repository.Transactor
}

func NewReconciliationService(
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	tx repository.Transactor,
) *reconciliationService {
	return &reconciliationService{
		wallets:      wallets,
		transactions: transactions,
		tx:           tx,
	}
}

func (s *reconciliationService) Reconcile(ctx context.Context, userID int64) (*models.ReconcileReport, error) {
	ctx, span := otel.Tracer("reconciliation-service").Start(ctx, "Reconcile")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", userID))

	report := &models.ReconcileReport{UserID: userID}
	// блокировка строки кошелька держит изменения баланса до конца обоих чтений
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.wallets.GetLocked(ctx, userID)
		if err != nil {
			return err
		}
		sum, err := s.transactions.SumByUser(ctx, userID)
		if err != nil {
			return err
		}
		report.Balance = w.Balance
		report.LedgerSum = sum
		return nil
	})
	if err != nil {
		slog.Error("failed to reconcile wallet", "user_id", userID, "error", err)
		return nil, failSpan(span, err, "reconcile failed")
	}

	report.Consistent = report.Balance.Equal(report.LedgerSum)
	span.SetAttributes(attribute.Bool("consistent", report.Consistent))
	if !report.Consistent {
		observability.LedgerDriftTotal.Inc()
		slog.Warn("wallet balance differs from ledger",
			"user_id", userID,
			"balance", report.Balance.String(),
			"ledger_sum", report.LedgerSum.String())
	}
	return report, nil
}
