package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/auth"
	"github.com/dmitrijs2005/certledger/internal/server/config"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
)

const userWalletConstraint = "users_wallet_address_key"

type CreateUserRequest struct {
	WalletAddress   string
	InstitutionName string
	Email           string
	Website         string
}

// UserResult is returned by CreateOrGet. Token is empty when session
// tokens are disabled.
type UserResult struct {
	User    *models.User
	Created bool
	Token   string
}

// UserService provisions wallet users and issues their session tokens.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// CreateOrGet returns the user owning req.WalletAddress, inserting it first
// if needed. Losing an insert race to a concurrent request for the same
// wallet returns the winner's row.
func (s *UserService) CreateOrGet(ctx context.Context, req CreateUserRequest) (*UserResult, error) {
	if err := requireFields(field{"wallet_address", req.WalletAddress}); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByWallet(ctx, req.WalletAddress)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		user, err = repo.Create(ctx, &models.User{
			WalletAddress:   req.WalletAddress,
			InstitutionName: optional(req.InstitutionName),
			Email:           optional(req.Email),
			Website:         optional(req.Website),
		})
		if err != nil {
			constraint, ok := dbx.UniqueViolation(err)
			if !ok || constraint != userWalletConstraint {
				return nil, persistence(err)
			}
			if user, err = repo.GetByWallet(ctx, req.WalletAddress); err != nil {
				return nil, persistence(err)
			}
		} else {
			created = true
		}
	default:
		return nil, persistence(err)
	}

	result := &UserResult{User: user, Created: created}
	if len(s.jwtSecret) > 0 {
		token, err := auth.GenerateToken(user.WalletAddress, s.jwtSecret, s.tokenValidityDuration)
		if err != nil {
			return nil, common.ErrorInternal
		}
		result.Token = token
	}
	return result, nil
}

// Get returns the user owning walletAddress or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, walletAddress string) (*models.User, error) {
	if err := requireFields(field{"wallet_address", walletAddress}); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, persistence(err)
	}
	return user, nil
}
