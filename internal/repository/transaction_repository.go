package repository

import (
	"context"

	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) (string, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Transaction, error)
	SumByUser(ctx context.Context, userID int64) (decimal.Decimal, error)
}
