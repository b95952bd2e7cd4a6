// Package institutions provides the PostgreSQL-backed repository for
// issuing institutions.
package institutions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
)

// PostgresRepository implements institution storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an institution. A duplicate email surfaces as the driver's
// unique-violation error (constraint institutions_email_key), wrapped.
func (r *PostgresRepository) Create(ctx context.Context, institution *models.Institution) (*models.Institution, error) {
	query :=
		`INSERT INTO institutions (institution_name, email, website)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		institution.InstitutionName, institution.Email, institution.Website).Scan(&institution.ID, &institution.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return institution, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Institution, error) {
	query :=
		`SELECT id, institution_name, email, website, created_at FROM institutions
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

// GetByWallet returns the institution the wallet's user is affiliated with.
func (r *PostgresRepository) GetByWallet(ctx context.Context, walletAddress string) (*models.Institution, error) {
	query :=
		`SELECT i.id, i.institution_name, i.email, i.website, i.created_at
		 FROM institutions i
		 JOIN users u ON u.institution_id = i.id
		 WHERE u.wallet_address = $1
		 `
	return r.getOne(ctx, query, walletAddress)
}

// Update rewrites name and website of the institution keyed by email.
// common.ErrorNotFound means no row matched.
func (r *PostgresRepository) Update(ctx context.Context, institution *models.Institution) (*models.Institution, error) {
	query :=
		`UPDATE institutions
		 SET institution_name = $1, website = $2
		 WHERE email = $3
		 RETURNING id, institution_name, email, website, created_at
		 `
	return r.getOne(ctx, query, institution.InstitutionName, institution.Website, institution.Email)
}

// List returns every institution, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Institution, error) {
	query :=
		`SELECT id, institution_name, email, website, created_at FROM institutions
		 ORDER BY created_at DESC, id DESC
		 `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select institutions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Institution, 0)
	for rows.Next() {
		var item models.Institution
		if err := rows.Scan(&item.ID, &item.InstitutionName, &item.Email, &item.Website, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Institution, error) {
	item := &models.Institution{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&item.ID, &item.InstitutionName, &item.Email, &item.Website, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}
