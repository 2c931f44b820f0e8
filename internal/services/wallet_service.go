package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/honeynil/boost-wallet/internal/repository"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type WalletService interface {
	GetOrCreateWallet(ctx context.Context, userID int64) (*models.Wallet, error)
	// AdjustBalance is the only way a balance changes. It does not write a
	// ledger entry; callers pair it with one inside the same transaction.
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error)
	GetTransactionHistory(ctx context.Context, userID int64, limit, offset int) ([]models.Transaction, error)
}

type walletService struct {
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
}

func NewWalletService(wallets repository.WalletRepository, transactions repository.TransactionRepository) *walletService {
	return &walletService{
		wallets:      wallets,
		transactions: transactions,
	}
}

func (s *walletService) GetOrCreateWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "GetOrCreateWallet")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", userID))

	w, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		slog.Error("failed to get wallet", "user_id", userID, "error", err)
		return nil, failSpan(span, err, "get or create wallet failed")
	}
	return w, nil
}

func (s *walletService) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "AdjustBalance")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", userID), attribute.String("delta", delta.String()))

	if delta.IsZero() {
		return decimal.Zero, failSpan(span, fmt.Errorf("%w: zero balance change", pkgerrors.ErrInvalidAmount), "zero delta")
	}

	if delta.Abs().GreaterThan(models.MaxAmount) {
		return decimal.Zero, failSpan(span, fmt.Errorf("%w: balance change exceeds $%s", pkgerrors.ErrInvalidAmount, models.MaxAmount.StringFixed(2)), "delta too large")
	}

	if _, err := s.wallets.GetOrCreate(ctx, userID); err != nil {
		slog.Error("failed to ensure wallet", "user_id", userID, "error", err)
		return decimal.Zero, failSpan(span, err, "ensure wallet failed")
	}

	balance, err := s.wallets.ChangeBalance(ctx, userID, delta)
	if err != nil {
		slog.Error("failed to adjust balance", "user_id", userID, "delta", delta.String(), "error", err)
		return decimal.Zero, failSpan(span, err, "change balance failed")
	}
	return balance, nil
}

func (s *walletService) GetTransactionHistory(ctx context.Context, userID int64, limit, offset int) ([]models.Transaction, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "GetTransactionHistory")
	defer span.End()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	history, err := s.transactions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		slog.Error("failed to get transaction history", "user_id", userID, "error", err)
		return nil, failSpan(span, err, "list transactions failed")
	}
	return history, nil
}
