package institutions

import (
	"context"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, institution *models.Institution) (*models.Institution, error)
	GetByEmail(ctx context.Context, email string) (*models.Institution, error)
	GetByWallet(ctx context.Context, walletAddress string) (*models.Institution, error)
	Update(ctx context.Context, institution *models.Institution) (*models.Institution, error)
	List(ctx context.Context) ([]*models.Institution, error)
}
