package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/models"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
)

type PostgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) GetByUsername(ctx context.Context, username string) (a *models.Admin, err error) {
	ctx, done := instrument(ctx, "GetAdminByUsername")
	defer done(&err)

	a = &models.Admin{}
	query := `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`
	err = conn(ctx, r.db).QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrAdminNotFound
	}
	if err != nil {
		slog.Error("failed to get admin", "method", "GetByUsername", "error", err)
		return nil, storeError("get admin", err)
	}
	return a, nil
}
