package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const depositColumns = `deposit_id, user_id, amount, amount_inr, payment_method, currency, status, screenshot, created_at, updated_at`

type PostgresDepositRepository struct {
	db *sql.DB
}

func NewPostgresDepositRepository(db *sql.DB) *PostgresDepositRepository {
	return &PostgresDepositRepository{db: db}
}

func (r *PostgresDepositRepository) Create(ctx context.Context, d *models.Deposit) (err error) {
	ctx, done := instrument(ctx, "CreateDeposit")
	defer done(&err)

	if d == nil {
		slog.Error("failed to create deposit", "method", "Create", "error", pkgerrors.ErrNilDeposit)
		return pkgerrors.ErrNilDeposit
	}
	if !d.PaymentMethod.Valid() {
		slog.Error("invalid payment method", "method", "Create", "payment_method", d.PaymentMethod)
		return pkgerrors.ErrInvalidPaymentMethod
	}
	if d.Status != models.DepositPending {
		return fmt.Errorf("deposit must be created as %s, got %q", models.DepositPending, d.Status)
	}

	query := `
		INSERT INTO deposits (deposit_id, user_id, amount, amount_inr, payment_method, currency, status, screenshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = conn(ctx, r.db).QueryRowContext(ctx, query,
		d.ID, d.UserID, d.Amount, d.AmountINR, d.PaymentMethod, d.Currency, d.Status, d.Screenshot,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			slog.Error("deposit owner not found", "method", "Create", "user_id", d.UserID)
			return pkgerrors.ErrUserNotFound
		}
		slog.Error("failed to create deposit", "method", "Create", "deposit_id", d.ID, "user_id", d.UserID, "error", err)
		return storeError("create deposit", err)
	}

	slog.Info("deposit created", "method", "Create", "deposit_id", d.ID, "user_id", d.UserID, "amount", d.Amount.String())
	return nil
}

func (r *PostgresDepositRepository) GetByID(ctx context.Context, id string) (d *models.Deposit, err error) {
	ctx, done := instrument(ctx, "GetDepositByID", attribute.String("deposit_id", id))
	defer done(&err)

	query := `SELECT ` + depositColumns + ` FROM deposits WHERE deposit_id = $1`
	d, err = scanDeposit(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrDepositNotFound
	}
	if err != nil {
		slog.Error("failed to get deposit", "method", "GetByID", "deposit_id", id, "error", err)
		return nil, storeError("get deposit", err)
	}
	return d, nil
}

func (r *PostgresDepositRepository) ListByUser(ctx context.Context, userID int64) (out []models.Deposit, err error) {
	ctx, done := instrument(ctx, "ListDepositsByUser", attribute.Int64("user_id", userID))
	defer done(&err)

	query := `SELECT ` + depositColumns + ` FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "ListByUser", query, userID)
}

func (r *PostgresDepositRepository) ListByStatus(ctx context.Context, status models.DepositStatus) (out []models.Deposit, err error) {
	ctx, done := instrument(ctx, "ListDepositsByStatus", attribute.String("status", string(status)))
	defer done(&err)

	query := `SELECT ` + depositColumns + ` FROM deposits WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, "ListByStatus", query, status)
}

func (r *PostgresDepositRepository) list(ctx context.Context, method, query string, arg any) ([]models.Deposit, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, arg)
	if err != nil {
		slog.Error("failed to list deposits", "method", method, "error", err)
		return nil, storeError("list deposits", err)
	}
	defer rows.Close()

	deposits := []models.Deposit{}
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, storeError("scan deposit", err)
		}
		deposits = append(deposits, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list deposits", err)
	}
	return deposits, nil
}

// Finalize is a compare-and-set on status: only a pending row is updated, so of
// two concurrent finalizations exactly one matches.
func (r *PostgresDepositRepository) Finalize(ctx context.Context, id string, status models.DepositStatus) (d *models.Deposit, err error) {
	ctx, done := instrument(ctx, "FinalizeDeposit",
		attribute.String("deposit_id", id),
		attribute.String("status", string(status)),
	)
	defer done(&err)

	if !status.Terminal() {
		return nil, fmt.Errorf("cannot finalize deposit to %q", status)
	}

	db := conn(ctx, r.db)
	query := `
		UPDATE deposits
		SET status = $1, updated_at = now()
		WHERE deposit_id = $2
		AND status = $3
		RETURNING ` + depositColumns
	d, err = scanDeposit(db.QueryRowContext(ctx, query, status, id, models.DepositPending))
	if stderrors.Is(err, sql.ErrNoRows) {
		var current models.DepositStatus
		err = db.QueryRowContext(ctx, `SELECT status FROM deposits WHERE deposit_id = $1`, id).Scan(&current)
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, pkgerrors.ErrDepositNotFound
		}
		if err != nil {
			slog.Error("failed to read deposit status", "method", "Finalize", "deposit_id", id, "error", err)
			return nil, storeError("read deposit status", err)
		}
		slog.Warn("deposit already finalized", "method", "Finalize", "deposit_id", id, "status", current)
		return nil, fmt.Errorf("%w: deposit %s is %s", pkgerrors.ErrAlreadyFinalized, id, current)
	}
	if err != nil {
		slog.Error("failed to finalize deposit", "method", "Finalize", "deposit_id", id, "error", err)
		return nil, storeError("finalize deposit", err)
	}

	slog.Info("deposit finalized", "method", "Finalize", "deposit_id", id, "status", status)
	return d, nil
}

func scanDeposit(s rowScanner) (*models.Deposit, error) {
	var (
		d         models.Deposit
		amountINR sql.NullInt64
		currency  sql.NullString
	)
	err := s.Scan(&d.ID, &d.UserID, &d.Amount, &amountINR, &d.PaymentMethod, &currency, &d.Status, &d.Screenshot, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if amountINR.Valid {
		v := amountINR.Int64
		d.AmountINR = &v
	}
	if currency.Valid {
		v := currency.String
		d.Currency = &v
	}
	return &d, nil
}
