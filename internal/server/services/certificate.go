package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/certificates"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
)

const (
	dateLayout            = "2006-01-02"
	defaultCertificateMax = 50
)

type CreateCertificateRequest struct {
	RecipientName          string
	CourseName             string
	InstitutionName        string
	RecipientWalletAddress string
	IssueDate              string
	CompletionDate         string
	Description            string
	ObjectID               string
	TransactionHash        string
}

func (r CreateCertificateRequest) toModel() (*models.Certificate, error) {
	if err := requireFields(
		field{"recipient_name", r.RecipientName},
		field{"course_name", r.CourseName},
		field{"institution_name", r.InstitutionName},
		field{"recipient_wallet_address", r.RecipientWalletAddress},
		field{"issue_date", r.IssueDate},
		field{"completion_date", r.CompletionDate},
	); err != nil {
		return nil, err
	}

	issued, err := time.Parse(dateLayout, r.IssueDate)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"issue_date"}, Detail: "issue_date must be YYYY-MM-DD"}
	}
	completed, err := time.Parse(dateLayout, r.CompletionDate)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"completion_date"}, Detail: "completion_date must be YYYY-MM-DD"}
	}

	return &models.Certificate{
		RecipientName:          r.RecipientName,
		CourseName:             r.CourseName,
		InstitutionName:        r.InstitutionName,
		RecipientWalletAddress: r.RecipientWalletAddress,
		IssueDate:              issued,
		CompletionDate:         completed,
		Description:            optional(r.Description),
		ObjectID:               optional(r.ObjectID),
		TransactionHash:        optional(r.TransactionHash),
	}, nil
}

type CertificateFilter struct {
	RecipientWallet string
	InstitutionName string
}

type CertificateService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCertificateService(db *sql.DB, m repomanager.RepositoryManager) *CertificateService {
	return &CertificateService{db: db, repomanager: m}
}

func (s *CertificateService) Create(ctx context.Context, req CreateCertificateRequest) (*models.Certificate, error) {
	cert, err := req.toModel()
	if err != nil {
		return nil, err
	}

	cert, err = s.repomanager.Certificates(s.db).Create(ctx, cert)
	if err != nil {
		return nil, persistence(err)
	}
	return cert, nil
}

// List returns certificates newest first: those held by RecipientWallet,
// else those issued by InstitutionName, else the latest few.
func (s *CertificateService) List(ctx context.Context, filter CertificateFilter) ([]*models.CertificateView, error) {
	items, err := s.repomanager.Certificates(s.db).List(ctx, certificates.Filter{
		RecipientWallet: filter.RecipientWallet,
		InstitutionName: filter.InstitutionName,
		Limit:           defaultCertificateMax,
	})
	if err != nil {
		return nil, persistence(err)
	}
	return items, nil
}
