package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresWalletRepository struct {
	db *sql.DB
}

func NewPostgresWalletRepository(db *sql.DB) *PostgresWalletRepository {
	return &PostgresWalletRepository{db: db}
}

func (r *PostgresWalletRepository) GetOrCreate(ctx context.Context, userID int64) (w *models.Wallet, err error) {
	ctx, done := instrument(ctx, "GetOrCreateWallet", attribute.Int64("user_id", userID))
	defer done(&err)

	query := `INSERT INTO wallets (user_id, balance) VALUES ($1, 0) ON CONFLICT (user_id) DO NOTHING`
	if _, err = conn(ctx, r.db).ExecContext(ctx, query, userID); err != nil {
		if pqCode(err) == foreignKeyViolation {
			slog.Error("wallet owner not found", "method", "GetOrCreate", "user_id", userID, "error", err)
			return nil, pkgerrors.ErrUserNotFound
		}
		slog.Error("failed to create wallet", "method", "GetOrCreate", "user_id", userID, "error", err)
		return nil, storeError("create wallet", err)
	}

	return r.get(ctx, userID)
}

func (r *PostgresWalletRepository) Get(ctx context.Context, userID int64) (w *models.Wallet, err error) {
	ctx, done := instrument(ctx, "GetWallet", attribute.Int64("user_id", userID))
	defer done(&err)

	return r.get(ctx, userID)
}

func (r *PostgresWalletRepository) GetLocked(ctx context.Context, userID int64) (w *models.Wallet, err error) {
	ctx, done := instrument(ctx, "GetWalletLocked", attribute.Int64("user_id", userID))
	defer done(&err)

	return r.query(ctx, `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1 FOR SHARE`, userID)
}

func (r *PostgresWalletRepository) get(ctx context.Context, userID int64) (*models.Wallet, error) {
	return r.query(ctx, `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`, userID)
}

func (r *PostgresWalletRepository) query(ctx context.Context, query string, userID int64) (*models.Wallet, error) {
	var w models.Wallet
	err := conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Error("wallet not found", "method", "Get", "user_id", userID)
		return nil, pkgerrors.ErrWalletNotFound
	}
	if err != nil {
		slog.Error("failed to get wallet", "method", "Get", "user_id", userID, "error", err)
		return nil, storeError("get wallet", err)
	}
	return &w, nil
}

// ChangeBalance adds delta in a single statement so concurrent writers for the
// same user serialize on the row lock instead of overwriting each other.
func (r *PostgresWalletRepository) ChangeBalance(ctx context.Context, userID int64, delta decimal.Decimal) (newBalance decimal.Decimal, err error) {
	ctx, done := instrument(ctx, "ChangeBalance",
		attribute.Int64("user_id", userID),
		attribute.String("delta", delta.String()),
	)
	defer done(&err)

	db := conn(ctx, r.db)
	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = now()
		WHERE user_id = $2
		AND (balance + $1) >= 0
		RETURNING balance
	`
	err = db.QueryRowContext(ctx, query, delta, userID).Scan(&newBalance)
	if stderrors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err = db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
			slog.Error("failed to check wallet", "method", "ChangeBalance", "user_id", userID, "error", err)
			return decimal.Zero, storeError("check wallet", err)
		}
		if !exists {
			return decimal.Zero, pkgerrors.ErrWalletNotFound
		}
		slog.Warn("balance change refused", "method", "ChangeBalance", "user_id", userID, "delta", delta.String())
		return decimal.Zero, fmt.Errorf("%w: user %d needs %s", pkgerrors.ErrInsufficientBalance, userID, delta.Neg().String())
	}
	if err != nil {
		slog.Error("failed to change balance", "method", "ChangeBalance", "user_id", userID, "error", err)
		return decimal.Zero, storeError("change balance", err)
	}

	slog.Info("balance changed", "method", "ChangeBalance", "user_id", userID, "delta", delta.String(), "balance", newBalance.String())
	return newBalance, nil
}
