package transactions

import (
	"context"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

// Filter fields are AND-ed; empty fields are ignored.
type Filter struct {
	WalletAddress string
	TxHash        string
	Type          string
	Limit         int
}

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	List(ctx context.Context, filter Filter) ([]*models.Transaction, error)
}
