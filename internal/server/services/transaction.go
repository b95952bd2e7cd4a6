package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/transactions"
)

const defaultTransactionMax = 100

type CreateTransactionRequest struct {
	WalletAddress   string
	TransactionType string
	TxHash          string
	Status          bool
	Description     string
}

type TransactionFilter struct {
	WalletAddress string
	TxHash        string
	Type          string
}

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

// Create records a transaction for the user owning req.WalletAddress.
// An unknown wallet is common.ErrorUserNotFound.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error) {
	if err := requireFields(
		field{"wallet_address", req.WalletAddress},
		field{"transaction_type", req.TransactionType},
	); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByWallet(ctx, req.WalletAddress)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, persistence(err)
	}

	tx, err := s.repomanager.Transactions(s.db).Create(ctx, &models.Transaction{
		UserID:          user.ID,
		WalletAddress:   user.WalletAddress,
		TransactionType: req.TransactionType,
		TxHash:          optional(req.TxHash),
		Status:          req.Status,
		Description:     optional(req.Description),
	})
	if err != nil {
		return nil, persistence(err)
	}
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	items, err := s.repomanager.Transactions(s.db).List(ctx, transactions.Filter{
		WalletAddress: filter.WalletAddress,
		TxHash:        filter.TxHash,
		Type:          filter.Type,
		Limit:         defaultTransactionMax,
	})
	if err != nil {
		return nil, persistence(err)
	}
	return items, nil
}
