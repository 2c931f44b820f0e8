package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const orderColumns = `order_id, user_id, platform, service, link, quantity, total, status, name, email, paid_from_wallet, created_at, updated_at`

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o *models.Order) (err error) {
	ctx, done := instrument(ctx, "CreateOrder")
	defer done(&err)

	if o == nil {
		return pkgerrors.ErrNilOrder
	}
	if !o.Status.Valid() {
		slog.Error("invalid order status", "method", "Create", "status", o.Status)
		return pkgerrors.ErrInvalidOrderStatus
	}

	query := `
		INSERT INTO orders (order_id, user_id, platform, service, link, quantity, total, status, name, email, paid_from_wallet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err = conn(ctx, r.db).QueryRowContext(ctx, query,
		o.ID, o.UserID, o.Platform, o.Service, o.Link, o.Quantity, o.Total, o.Status, o.Name, o.Email, o.PaidFromWallet,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return pkgerrors.ErrUserNotFound
		}
		slog.Error("failed to create order", "method", "Create", "order_id", o.ID, "error", err)
		return storeError("create order", err)
	}

	slog.Info("order created", "method", "Create", "order_id", o.ID, "total", o.Total.String())
	return nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (o *models.Order, err error) {
	ctx, done := instrument(ctx, "GetOrderByID", attribute.String("order_id", id))
	defer done(&err)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	o, err = scanOrder(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrOrderNotFound
	}
	if err != nil {
		slog.Error("failed to get order", "method", "GetByID", "order_id", id, "error", err)
		return nil, storeError("get order", err)
	}
	return o, nil
}

func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID int64) (out []models.Order, err error) {
	ctx, done := instrument(ctx, "ListOrdersByUser", attribute.Int64("user_id", userID))
	defer done(&err)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "ListByUser", query, userID)
}

// ListByEmail finds orders by contact email, case-insensitively; guest orders are reachable only this way.
func (r *PostgresOrderRepository) ListByEmail(ctx context.Context, email string) (out []models.Order, err error) {
	ctx, done := instrument(ctx, "ListOrdersByEmail")
	defer done(&err)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE lower(email) = lower($1) ORDER BY created_at DESC`
	return r.list(ctx, "ListByEmail", query, email)
}

func (r *PostgresOrderRepository) ListAll(ctx context.Context) (out []models.Order, err error) {
	ctx, done := instrument(ctx, "ListAllOrders")
	defer done(&err)

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, "ListAll", query)
}

func (r *PostgresOrderRepository) list(ctx context.Context, method, query string, args ...any) ([]models.Order, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("failed to list orders", "method", method, "error", err)
		return nil, storeError("list orders", err)
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storeError("scan order", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list orders", err)
	}
	return out, nil
}

func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (o *models.Order, err error) {
	ctx, done := instrument(ctx, "UpdateOrderStatus",
		attribute.String("order_id", id),
		attribute.String("status", string(status)),
	)
	defer done(&err)

	if !status.Valid() {
		return nil, pkgerrors.ErrInvalidOrderStatus
	}

	query := `UPDATE orders SET status = $1, updated_at = now() WHERE order_id = $2 RETURNING ` + orderColumns
	o, err = scanOrder(conn(ctx, r.db).QueryRowContext(ctx, query, status, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrOrderNotFound
	}
	if err != nil {
		slog.Error("failed to update order status", "method", "UpdateStatus", "order_id", id, "error", err)
		return nil, storeError("update order status", err)
	}

	slog.Info("order status updated", "method", "UpdateStatus", "order_id", id, "status", status)
	return o, nil
}

func scanOrder(s rowScanner) (*models.Order, error) {
	var (
		o      models.Order
		userID sql.NullInt64
		link   sql.NullString
	)
	err := s.Scan(&o.ID, &userID, &o.Platform, &o.Service, &link, &o.Quantity, &o.Total, &o.Status,
		&o.Name, &o.Email, &o.PaidFromWallet, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		v := userID.Int64
		o.UserID = &v
	}
	if link.Valid {
		v := link.String
		o.Link = &v
	}
	return &o, nil
}
