package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/honeynil/boost-wallet/internal/models"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *models.Transaction) (id string, err error) {
	ctx, done := instrument(ctx, "CreateTransaction")
	defer done(&err)

	if tx == nil {
		slog.Error("failed to create transaction", "method", "Create", "error", pkgerrors.ErrNilTransaction)
		return "", pkgerrors.ErrNilTransaction
	}
	if !tx.Type.Valid() {
		slog.Error("invalid transaction type", "method", "Create", "type", tx.Type)
		return "", pkgerrors.ErrInvalidTransactionType
	}
	if !tx.Type.SignMatches(tx.Amount) {
		slog.Error("amount sign does not match type", "method", "Create", "type", tx.Type, "amount", tx.Amount.String())
		return "", fmt.Errorf("%w: %s amount %s", pkgerrors.ErrInvalidAmount, tx.Type, tx.Amount.String())
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transactions (transaction_id, user_id, type, amount, description, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err = conn(ctx, r.db).QueryRowContext(ctx, query,
		tx.ID, tx.UserID, tx.Type, tx.Amount, tx.Description, tx.ReferenceID,
	).Scan(&tx.CreatedAt)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			slog.Warn("ledger entry already recorded", "method", "Create", "type", tx.Type, "reference_id", tx.ReferenceID)
			return "", pkgerrors.ErrRequestAlreadyProcessed
		case foreignKeyViolation:
			return "", pkgerrors.ErrUserNotFound
		}
		slog.Error("failed to create transaction", "method", "Create", "user_id", tx.UserID, "error", err)
		return "", storeError("create transaction", err)
	}

	slog.Info("transaction created", "method", "Create", "transaction_id", tx.ID, "user_id", tx.UserID, "type", tx.Type, "amount", tx.Amount.String())
	return tx.ID, nil
}

func (r *PostgresTransactionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) (out []models.Transaction, err error) {
	ctx, done := instrument(ctx, "ListTransactionsByUser",
		attribute.Int64("user_id", userID),
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)
	defer done(&err)

	query := `
		SELECT transaction_id, user_id, type, amount, description, reference_id, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		slog.Error("failed to list transactions", "method", "ListByUser", "user_id", userID, "error", err)
		return nil, storeError("list transactions", err)
	}
	defer rows.Close()

	out = []models.Transaction{}
	for rows.Next() {
		var (
			tx  models.Transaction
			ref sql.NullString
		)
		if err = rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &ref, &tx.CreatedAt); err != nil {
			return nil, storeError("scan transaction", err)
		}
		if ref.Valid {
			v := ref.String
			tx.ReferenceID = &v
		}
		out = append(out, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("list transactions", err)
	}
	return out, nil
}

func (r *PostgresTransactionRepository) SumByUser(ctx context.Context, userID int64) (sum decimal.Decimal, err error) {
	ctx, done := instrument(ctx, "SumTransactionsByUser", attribute.Int64("user_id", userID))
	defer done(&err)

	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`
	if err = conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		slog.Error("failed to sum transactions", "method", "SumByUser", "user_id", userID, "error", err)
		return decimal.Zero, storeError("sum transactions", err)
	}
	return sum, nil
}
