package certificates

import (
	"context"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

// Filter narrows List. RecipientWallet wins over InstitutionName; with
// neither set only the newest Limit rows are returned.
type Filter struct {
	RecipientWallet string
	InstitutionName string
	Limit           int
}

type Repository interface {
	Create(ctx context.Context, certificate *models.Certificate) (*models.Certificate, error)
	List(ctx context.Context, filter Filter) ([]*models.CertificateView, error)
}
