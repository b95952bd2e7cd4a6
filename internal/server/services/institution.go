package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/institutions"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/users"
)

const institutionEmailConstraint = "institutions_email_key"

type InstitutionRequest struct {
	InstitutionName string
	Email           string
	Website         string
	WalletAddress   string
}

func (r InstitutionRequest) validate() error {
	return requireFields(
		field{"institution_name", r.InstitutionName},
		field{"email", r.Email},
		field{"website", r.Website},
		field{"wallet_address", r.WalletAddress},
	)
}

type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Registration is the successful result of RegisterOrUpdate. User carries
// the institution triple and InstitutionID of Institution.
type Registration struct {
	Outcome     Outcome
	Institution *models.Institution
	User        *models.User
}

// InstitutionService reconciles institution registrations against the
// existing institution and user rows.
type InstitutionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewInstitutionService(db *sql.DB, m repomanager.RepositoryManager) *InstitutionService {
	return &InstitutionService{db: db, repomanager: m}
}

// RegisterOrUpdate creates the institution identified by req.Email, or
// updates it when it already exists under the same name, and affiliates the
// user owning req.WalletAddress with it. Everything after validation runs in
// one transaction that is rolled back on any failure.
//
// Errors: *ValidationError, common.ErrorUserNotFound,
// common.ErrorEmailConflict, or an error wrapping common.ErrorPersistence.
func (s *InstitutionService) RegisterOrUpdate(ctx context.Context, req InstitutionRequest) (*Registration, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var reg *Registration
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)
		institutionRepo := s.repomanager.Institutions(tx)

		// the lock serialises concurrent registrations from the same wallet
		if _, err := userRepo.GetByWalletForUpdate(ctx, req.WalletAddress); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUserNotFound
			}
			return persistence(err)
		}

		existing, err := institutionRepo.GetByEmail(ctx, req.Email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			reg, err = s.create(ctx, userRepo, institutionRepo, req)
		case err != nil:
			err = persistence(err)
		case existing.InstitutionName != req.InstitutionName:
			err = common.ErrorEmailConflict
		default:
			reg, err = s.update(ctx, userRepo, institutionRepo, req)
		}
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return reg, nil
}

func (s *InstitutionService) create(ctx context.Context, userRepo users.Repository, institutionRepo institutions.Repository, req InstitutionRequest) (*Registration, error) {
	institution, err := institutionRepo.Create(ctx, &models.Institution{
		InstitutionName: req.InstitutionName,
		Email:           req.Email,
		Website:         req.Website,
	})
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == institutionEmailConstraint {
			return nil, common.ErrorEmailConflict
		}
		return nil, persistence(err)
	}

	user, err := userRepo.SetInstitution(ctx, req.WalletAddress, institution)
	if err != nil {
		return nil, persistence(err)
	}

	return &Registration{Outcome: OutcomeCreated, Institution: institution, User: user}, nil
}

func (s *InstitutionService) update(ctx context.Context, userRepo users.Repository, institutionRepo institutions.Repository, req InstitutionRequest) (*Registration, error) {
	institution, err := institutionRepo.Update(ctx, &models.Institution{
		InstitutionName: req.InstitutionName,
		Email:           req.Email,
		Website:         req.Website,
	})
	if err != nil {
		return nil, persistence(err)
	}

	user, err := userRepo.SetInstitution(ctx, req.WalletAddress, institution)
	if err != nil {
		return nil, persistence(err)
	}

	return &Registration{Outcome: OutcomeUpdated, Institution: institution, User: user}, nil
}

// classify keeps taxonomy errors intact and reports anything else, such as a
// failed BEGIN or COMMIT, as a persistence failure.
func classify(err error) error {
	switch {
	case errors.Is(err, common.ErrorUserNotFound),
		errors.Is(err, common.ErrorEmailConflict),
		errors.Is(err, common.ErrorPersistence),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		return persistence(err)
	}
}

// Get returns the institution the wallet is affiliated with, or when
// walletAddress is blank, the institution registered under email.
// A miss is common.ErrorNotFound.
func (s *InstitutionService) Get(ctx context.Context, walletAddress, email string) (*models.Institution, error) {
	repo := s.repomanager.Institutions(s.db)

	var (
		institution *models.Institution
		err         error
	)
	switch {
	case !blank(walletAddress):
		institution, err = repo.GetByWallet(ctx, walletAddress)
	case !blank(email):
		institution, err = repo.GetByEmail(ctx, email)
	default:
		return nil, &ValidationError{Fields: []string{"wallet_address", "email"}, Detail: "wallet_address or email is required"}
	}

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, persistence(err)
	}
	return institution, nil
}

// List returns all institutions, newest first.
func (s *InstitutionService) List(ctx context.Context) ([]*models.Institution, error) {
	items, err := s.repomanager.Institutions(s.db).List(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return items, nil
}
