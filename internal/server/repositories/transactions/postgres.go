// Package transactions provides the PostgreSQL-backed repository for chain
// transactions recorded against users.
package transactions

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts tx for tx.UserID; WalletAddress is carried through untouched.
func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query :=
		`INSERT INTO transactions (user_id, transaction_type, tx_hash, status, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.TransactionType, tx.TxHash, tx.Status, tx.Description).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tx, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Transaction, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.WalletAddress != "" {
		add("u.wallet_address = $%d", filter.WalletAddress)
	}
	if filter.TxHash != "" {
		add("t.tx_hash = $%d", filter.TxHash)
	}
	if filter.Type != "" {
		add("t.transaction_type = $%d", filter.Type)
	}

	query := `SELECT t.id, t.user_id, u.wallet_address, t.transaction_type, t.tx_hash, t.status, t.description, t.created_at
		FROM transactions t
		JOIN users u ON t.user_id = u.id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.WalletAddress, &item.TransactionType,
			&item.TxHash, &item.Status, &item.Description, &item.CreatedAt,
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
