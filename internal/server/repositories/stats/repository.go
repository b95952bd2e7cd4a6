package stats

import (
	"context"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

type Repository interface {
	Overview(ctx context.Context) (*models.StatsOverview, error)
	DailyCertificates(ctx context.Context, days int) ([]models.DailyCertificates, error)
	TopInstitutions(ctx context.Context, limit int) ([]models.InstitutionCertificates, error)
}
