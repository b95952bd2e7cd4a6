package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/certificates"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/institutions"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/stats"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore is an in-memory users/institutions store with fault injection.
// It does not model rollback; tests assert ROLLBACK on the sqlmock side.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*models.User
	institutions map[string]*models.Institution
	nextID       int64
	calls        int

	getUserErr           error
	createUserErr        error
	getByEmailErr        error
	createInstitutionErr error
	updateInstitutionErr error
	setInstitutionErr    error
}

func newMemStore(wallets ...string) *memStore {
	s := &memStore{
		users:        map[string]*models.User{},
		institutions: map[string]*models.Institution{},
	}
	for _, w := range wallets {
		s.nextID++
		s.users[w] = &models.User{ID: s.nextID, WalletAddress: w, CreatedAt: time.Now()}
	}
	return s
}

func (s *memStore) user(w string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[w]
	if !ok {
		return nil
	}
	c := *u
	return &c
}

func (s *memStore) institution(email string) *models.Institution {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.institutions[email]
	if !ok {
		return nil
	}
	c := *i
	return &c
}

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createUserErr != nil {
		return nil, r.createUserErr
	}
	r.nextID++
	c := *u
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.users[u.WalletAddress] = &c
	out := c
	return &out, nil
}

func (r memUsers) GetByWallet(ctx context.Context, w string) (*models.User, error) {
	r.mu.Lock()
	r.calls++
	err := r.getUserErr
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if u := r.user(w); u != nil {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByWalletForUpdate(ctx context.Context, w string) (*models.User, error) {
	return r.GetByWallet(ctx, w)
}

func (r memUsers) SetInstitution(ctx context.Context, w string, inst *models.Institution) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.setInstitutionErr != nil {
		return nil, r.setInstitutionErr
	}
	u, ok := r.users[w]
	if !ok {
		return nil, common.ErrorNotFound
	}
	id, name, email, site := inst.ID, inst.InstitutionName, inst.Email, inst.Website
	u.InstitutionID, u.InstitutionName, u.Email, u.Website = &id, &name, &email, &site
	c := *u
	return &c, nil
}

type memInstitutions struct{ *memStore }

func (r memInstitutions) Create(ctx context.Context, i *models.Institution) (*models.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createInstitutionErr != nil {
		return nil, r.createInstitutionErr
	}
	if _, ok := r.institutions[i.Email]; ok {
		return nil, errors.New("duplicate email")
	}
	r.nextID++
	c := *i
	c.ID = r.nextID
	c.CreatedAt = time.Now().Add(time.Duration(r.nextID))
	r.institutions[i.Email] = &c
	out := c
	return &out, nil
}

func (r memInstitutions) GetByEmail(ctx context.Context, email string) (*models.Institution, error) {
	r.mu.Lock()
	r.calls++
	err := r.getByEmailErr
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if i := r.institution(email); i != nil {
		return i, nil
	}
	return nil, common.ErrorNotFound
}

func (r memInstitutions) GetByWallet(ctx context.Context, w string) (*models.Institution, error) {
	u := r.user(w)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if u == nil || u.InstitutionID == nil {
		return nil, common.ErrorNotFound
	}
	for _, i := range r.institutions {
		if i.ID == *u.InstitutionID {
			c := *i
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memInstitutions) Update(ctx context.Context, i *models.Institution) (*models.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.updateInstitutionErr != nil {
		return nil, r.updateInstitutionErr
	}
	cur, ok := r.institutions[i.Email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.InstitutionName, cur.Website = i.InstitutionName, i.Website
	c := *cur
	return &c, nil
}

func (r memInstitutions) List(ctx context.Context) ([]*models.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := make([]*models.Institution, 0, len(r.institutions))
	for _, i := range r.institutions {
		c := *i
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

type fakeCertificates struct {
	created    *models.Certificate
	createErr  error
	listFilter certificates.Filter
	listOut    []*models.CertificateView
	listErr    error
}

func (f *fakeCertificates) Create(ctx context.Context, c *models.Certificate) (*models.Certificate, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = c
	c.ID = 1
	return c, nil
}

func (f *fakeCertificates) List(ctx context.Context, filter certificates.Filter) ([]*models.CertificateView, error) {
	f.listFilter = filter
	return f.listOut, f.listErr
}

type fakeTransactions struct {
	created    *models.Transaction
	createErr  error
	listFilter transactions.Filter
	listOut    []*models.Transaction
	listErr    error
}

func (f *fakeTransactions) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = tx
	tx.ID = 1
	return tx, nil
}

func (f *fakeTransactions) List(ctx context.Context, filter transactions.Filter) ([]*models.Transaction, error) {
	f.listFilter = filter
	return f.listOut, f.listErr
}

type fakeStats struct {
	overview    *models.StatsOverview
	overviewErr error
	daily       []models.DailyCertificates
	dailyDays   int
	dailyErr    error
	top         []models.InstitutionCertificates
	topLimit    int
	topErr      error
}

func (f *fakeStats) Overview(ctx context.Context) (*models.StatsOverview, error) {
	return f.overview, f.overviewErr
}

func (f *fakeStats) DailyCertificates(ctx context.Context, days int) ([]models.DailyCertificates, error) {
	f.dailyDays = days
	return f.daily, f.dailyErr
}

func (f *fakeStats) TopInstitutions(ctx context.Context, limit int) ([]models.InstitutionCertificates, error) {
	f.topLimit = limit
	return f.top, f.topErr
}

type fakeRepoManager struct {
	store *memStore
	certs *fakeCertificates
	txs   *fakeTransactions
	stats *fakeStats
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return memUsers{m.store} }
func (m *fakeRepoManager) Institutions(db dbx.DBTX) institutions.Repository { return memInstitutions{m.store} }
func (m *fakeRepoManager) Certificates(db dbx.DBTX) certificates.Repository { return m.certs }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactions.Repository { return m.txs }
func (m *fakeRepoManager) Stats(db dbx.DBTX) stats.Repository               { return m.stats }

// raceStore reports the wallet as absent on the first lookup, then inserts
// it behind the caller's back so the retry read finds it.
type raceStore struct {
	*memStore
	wallet string
	looked bool
}

type raceUsers struct {
	memUsers
	r *raceStore
}

func (u raceUsers) GetByWallet(ctx context.Context, w string) (*models.User, error) {
	if !u.r.looked && w == u.r.wallet {
		u.r.looked = true
		u.r.mu.Lock()
		u.r.nextID++
		u.r.users[w] = &models.User{ID: u.r.nextID, WalletAddress: w}
		u.r.mu.Unlock()
		return nil, common.ErrorNotFound
	}
	return u.memUsers.GetByWallet(ctx, w)
}

type racingRepoManager struct {
	fakeRepoManager
	racer *raceStore
}

func (m *racingRepoManager) Users(db dbx.DBTX) users.Repository {
	return raceUsers{memUsers: memUsers{m.store}, r: m.racer}
}
