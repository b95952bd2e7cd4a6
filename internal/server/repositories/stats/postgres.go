// Package stats provides read-only aggregate queries over the record store.
package stats

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Overview(ctx context.Context) (*models.StatsOverview, error) {
	query :=
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM institutions),
			(SELECT COUNT(*) FROM certificates),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COUNT(*) FROM transactions WHERE status = TRUE)
		`

	var o models.StatsOverview
	err := r.db.QueryRowContext(ctx, query).Scan(
		&o.TotalUsers, &o.TotalInstitutions, &o.TotalCertificates,
		&o.TotalTransactions, &o.SuccessfulTransactions,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &o, nil
}

// DailyCertificates counts certificates per calendar day over the trailing
// window of days. Days without certificates are absent.
func (r *PostgresRepository) DailyCertificates(ctx context.Context, days int) ([]models.DailyCertificates, error) {
	query :=
		`SELECT DATE(created_at) AS date, COUNT(*)
		 FROM certificates
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY DATE(created_at)
		 ORDER BY date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to select daily certificates: %w", err)
	}
	defer rows.Close()

	result := make([]models.DailyCertificates, 0, days)
	for rows.Next() {
		var d models.DailyCertificates
		if err := rows.Scan(&d.Date, &d.CertificatesCount); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) TopInstitutions(ctx context.Context, limit int) ([]models.InstitutionCertificates, error) {
	query :=
		`SELECT institution_name, COUNT(*) AS certificates_count
		 FROM certificates
		 GROUP BY institution_name
		 ORDER BY certificates_count DESC, institution_name
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select top institutions: %w", err)
	}
	defer rows.Close()

	result := make([]models.InstitutionCertificates, 0, limit)
	for rows.Next() {
		var ic models.InstitutionCertificates
		if err := rows.Scan(&ic.InstitutionName, &ic.CertificatesCount); err != nil {
			return nil, err
		}
		result = append(result, ic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
