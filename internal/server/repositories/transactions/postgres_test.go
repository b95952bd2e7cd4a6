package transactions

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txCols = []string{"id", "user_id", "wallet_address", "transaction_type", "tx_hash", "status", "description", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	hash := "9xTx"
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+transactions\s*\(user_id,\s*transaction_type,\s*tx_hash,\s*status,\s*description\)`).
		WithArgs(int64(3), "create_institution", hash, true, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), time.Now()))

	got, err := repo.Create(context.Background(), &models.Transaction{
		UserID: 3, WalletAddress: "0xA", TransactionType: "create_institution", TxHash: &hash, Status: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
	assert.Equal(t, "0xA", got.WalletAddress)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+transactions`).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Transaction{UserID: 3, TransactionType: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestList_BuildsFilters(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		pattern string
		args    []any
	}{
		{
			name:    "no filters",
			filter:  Filter{Limit: 100},
			pattern: `(?s)JOIN\s+users\s+u\s+ON\s+t\.user_id\s*=\s*u\.id\s+ORDER\s+BY\s+t\.created_at\s+DESC\s+LIMIT\s+\$1$`,
			args:    []any{100},
		},
		{
			name:    "wallet only",
			filter:  Filter{WalletAddress: "0xA", Limit: 100},
			pattern: `(?s)WHERE\s+u\.wallet_address\s*=\s*\$1\s+ORDER\s+BY\s+t\.created_at\s+DESC\s+LIMIT\s+\$2$`,
			args:    []any{"0xA", 100},
		},
		{
			name:    "all filters",
			filter:  Filter{WalletAddress: "0xA", TxHash: "9xTx", Type: "mint_certificate", Limit: 100},
			pattern: `(?s)WHERE\s+u\.wallet_address\s*=\s*\$1\s+AND\s+t\.tx_hash\s*=\s*\$2\s+AND\s+t\.transaction_type\s*=\s*\$3\s+ORDER\s+BY\s+t\.created_at\s+DESC\s+LIMIT\s+\$4$`,
			args:    []any{"0xA", "9xTx", "mint_certificate", 100},
		},
		{
			name:    "type only",
			filter:  Filter{Type: "mint_certificate", Limit: 10},
			pattern: `(?s)WHERE\s+t\.transaction_type\s*=\s*\$1\s+ORDER\s+BY\s+t\.created_at\s+DESC\s+LIMIT\s+\$2$`,
			args:    []any{"mint_certificate", 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			args := make([]driver.Value, 0, len(tt.args))
			for _, a := range tt.args {
				args = append(args, a)
			}
			mock.ExpectQuery(tt.pattern).WithArgs(args...).
				WillReturnRows(sqlmock.NewRows(txCols).
					AddRow(int64(1), int64(3), "0xA", "mint_certificate", "9xTx", true, nil, time.Now()))

			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "0xA", got[0].WalletAddress)
			assert.Equal(t, "9xTx", *got[0].TxHash)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
