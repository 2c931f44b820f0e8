package repository

import (
	"context"

	"github.com/honeynil/boost-wallet/internal/models"
)

type DepositRepository interface {
	Create(ctx context.Context, d *models.Deposit) error
	GetByID(ctx context.Context, id string) (*models.Deposit, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Deposit, error)
	ListByStatus(ctx context.Context, status models.DepositStatus) ([]models.Deposit, error)
	// Finalize moves a pending deposit to a terminal status. It fails with
	// ErrAlreadyFinalized if the deposit is no longer pending.
	Finalize(ctx context.Context, id string, status models.DepositStatus) (*models.Deposit, error)
}
