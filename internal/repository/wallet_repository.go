package repository

import (
	"context"

	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.Wallet, error)
	Get(ctx context.Context, userID int64) (*models.Wallet, error)
	// GetLocked reads the wallet under a share lock held until the transaction ends.
	GetLocked(ctx context.Context, userID int64) (*models.Wallet, error)
	// ChangeBalance applies delta atomically and refuses to go below zero.
	ChangeBalance(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error)
}
