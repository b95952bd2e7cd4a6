package httpapi

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

type fakeInstitutions struct {
	gotReq  services.InstitutionRequest
	reg     *services.Registration
	regErr  error
	gotKeys [2]string
	one     *models.Institution
	oneErr  error
	all     []*models.Institution
	allErr  error
	called  bool
}

func (f *fakeInstitutions) RegisterOrUpdate(ctx context.Context, req services.InstitutionRequest) (*services.Registration, error) {
	f.called = true
	f.gotReq = req
	return f.reg, f.regErr
}

func (f *fakeInstitutions) Get(ctx context.Context, wallet, email string) (*models.Institution, error) {
	f.gotKeys = [2]string{wallet, email}
	return f.one, f.oneErr
}

func (f *fakeInstitutions) List(ctx context.Context) ([]*models.Institution, error) {
	return f.all, f.allErr
}

type fakeUsers struct {
	res    *services.UserResult
	err    error
	user   *models.User
	getErr error
}

func (f *fakeUsers) CreateOrGet(ctx context.Context, req services.CreateUserRequest) (*services.UserResult, error) {
	return f.res, f.err
}

func (f *fakeUsers) Get(ctx context.Context, wallet string) (*models.User, error) {
	return f.user, f.getErr
}

type fakeCertificates struct {
	gotReq    services.CreateCertificateRequest
	gotFilter services.CertificateFilter
	cert      *models.Certificate
	err       error
	list      []*models.CertificateView
}

func (f *fakeCertificates) Create(ctx context.Context, req services.CreateCertificateRequest) (*models.Certificate, error) {
	f.gotReq = req
	return f.cert, f.err
}

func (f *fakeCertificates) List(ctx context.Context, filter services.CertificateFilter) ([]*models.CertificateView, error) {
	f.gotFilter = filter
	return f.list, f.err
}

type fakeTransactions struct {
	gotReq    services.CreateTransactionRequest
	gotFilter services.TransactionFilter
	tx        *models.Transaction
	err       error
	list      []*models.Transaction
}

func (f *fakeTransactions) Create(ctx context.Context, req services.CreateTransactionRequest) (*models.Transaction, error) {
	f.gotReq = req
	return f.tx, f.err
}

func (f *fakeTransactions) List(ctx context.Context, filter services.TransactionFilter) ([]*models.Transaction, error) {
	f.gotFilter = filter
	return f.list, f.err
}

type fakeStats struct {
	stats *models.Stats
	err   error
}

func (f *fakeStats) Get(ctx context.Context) (*models.Stats, error) { return f.stats, f.err }

type fakeChain struct {
	objects []models.OwnedObject
	obj     *models.OwnedObject
	err     error
	waited  string
}

func (f *fakeChain) OwnedCertificates(ctx context.Context, owner string) ([]models.OwnedObject, error) {
	return f.objects, f.err
}

func (f *fakeChain) WaitForObject(ctx context.Context, owner, objectID string) (*models.OwnedObject, error) {
	f.waited = objectID
	return f.obj, f.err
}

func newTestServer(t *testing.T, secret string, svc Services) *HTTPServer {
	t.Helper()
	if svc.Institutions == nil {
		svc.Institutions = &fakeInstitutions{}
	}
	s, err := NewHTTPServer(":0", nopLogger{}, svc, secret, 0)
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}
	return s
}
