// Package certificates provides the PostgreSQL-backed repository for
// certificate bookkeeping rows and the view_certificates projection.
package certificates

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Certificate) (*models.Certificate, error) {
	query :=
		`INSERT INTO certificates (
			recipient_name, course_name, institution_name, recipient_wallet_address,
			issue_date, completion_date, description, object_id, transaction_hash
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.RecipientName, c.CourseName, c.InstitutionName, c.RecipientWalletAddress,
		c.IssueDate, c.CompletionDate, c.Description, c.ObjectID, c.TransactionHash,
	).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.CertificateView, error) {
	query := `SELECT id, recipient_name, course_name, institution_name, recipient_wallet_address,
		issue_date, completion_date, description, object_id, transaction_hash, created_at,
		transaction_status
		FROM view_certificates`

	var args []any
	switch {
	case filter.RecipientWallet != "":
		query += ` WHERE recipient_wallet_address = $1 ORDER BY created_at DESC`
		args = append(args, filter.RecipientWallet)
	case filter.InstitutionName != "":
		query += ` WHERE institution_name = $1 ORDER BY created_at DESC`
		args = append(args, filter.InstitutionName)
	default:
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select certificates: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CertificateView, 0)
	for rows.Next() {
		var item models.CertificateView
		if err := rows.Scan(
			&item.ID, &item.RecipientName, &item.CourseName, &item.InstitutionName, &item.RecipientWalletAddress,
			&item.IssueDate, &item.CompletionDate, &item.Description, &item.ObjectID, &item.TransactionHash,
			&item.CreatedAt, &item.TransactionStatus,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
