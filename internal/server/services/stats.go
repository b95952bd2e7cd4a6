package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
)

const (
	statsDays            = 7
	statsTopInstitutions = 5
)

type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

// Get assembles the dashboard summary: totals, certificates per day for the
// last week, and the busiest issuing institutions.
func (s *StatsService) Get(ctx context.Context) (*models.Stats, error) {
	repo := s.repomanager.Stats(s.db)

	overview, err := repo.Overview(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	daily, err := repo.DailyCertificates(ctx, statsDays)
	if err != nil {
		return nil, persistence(err)
	}
	top, err := repo.TopInstitutions(ctx, statsTopInstitutions)
	if err != nil {
		return nil, persistence(err)
	}

	return &models.Stats{
		Overview:          *overview,
		DailyCertificates: daily,
		TopInstitutions:   top,
	}, nil
}
