package repository

import (
	"context"

	"github.com/honeynil/boost-wallet/internal/models"
)

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}
