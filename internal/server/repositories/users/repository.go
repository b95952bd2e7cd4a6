package users

import (
	"context"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	GetByWalletForUpdate(ctx context.Context, walletAddress string) (*models.User, error)
	SetInstitution(ctx context.Context, walletAddress string, institution *models.Institution) (*models.User, error)
}
