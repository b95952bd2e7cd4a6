// Package users provides the PostgreSQL-backed repository for wallet users.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
)

const userColumns = `id, wallet_address, institution_id, institution_name, email, website, created_at`

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a user. Unset optional fields are stored as NULL.
// Unique violations on wallet_address are returned wrapped, unclassified.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (wallet_address, institution_name, email, website)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.WalletAddress, user.InstitutionName, user.Email, user.Website).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByWallet returns the user owning walletAddress or common.ErrorNotFound.
func (r *PostgresRepository) GetByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE wallet_address = $1
		 `
	return r.getOne(ctx, query, walletAddress)
}

// GetByWalletForUpdate is GetByWallet that also row-locks the user until
// the surrounding transaction ends. Only meaningful on a *sql.Tx.
func (r *PostgresRepository) GetByWalletForUpdate(ctx context.Context, walletAddress string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE wallet_address = $1
		 FOR UPDATE
		 `
	return r.getOne(ctx, query, walletAddress)
}

// SetInstitution links the user to institution and copies its
// name/email/website onto the user row. Exactly one row must match.
func (r *PostgresRepository) SetInstitution(ctx context.Context, walletAddress string, institution *models.Institution) (*models.User, error) {
	query :=
		`UPDATE users
		 SET institution_id = $1, institution_name = $2, email = $3, website = $4
		 WHERE wallet_address = $5
		 RETURNING ` + userColumns + `
		 `
	return r.getOne(ctx, query,
		institution.ID, institution.InstitutionName, institution.Email, institution.Website, walletAddress)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.WalletAddress, &user.InstitutionID,
		&user.InstitutionName, &user.Email, &user.Website, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
