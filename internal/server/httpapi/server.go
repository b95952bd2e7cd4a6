// Package httpapi is the HTTP adapter: it decodes requests, calls the
// services and maps their errors onto status codes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/certledger/internal/logging"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

type InstitutionService interface {
	RegisterOrUpdate(ctx context.Context, req services.InstitutionRequest) (*services.Registration, error)
	Get(ctx context.Context, walletAddress, email string) (*models.Institution, error)
	List(ctx context.Context) ([]*models.Institution, error)
}

type UserService interface {
	CreateOrGet(ctx context.Context, req services.CreateUserRequest) (*services.UserResult, error)
	Get(ctx context.Context, walletAddress string) (*models.User, error)
}

type CertificateService interface {
	Create(ctx context.Context, req services.CreateCertificateRequest) (*models.Certificate, error)
	List(ctx context.Context, filter services.CertificateFilter) ([]*models.CertificateView, error)
}

type TransactionService interface {
	Create(ctx context.Context, req services.CreateTransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, filter services.TransactionFilter) ([]*models.Transaction, error)
}

type StatsService interface {
	Get(ctx context.Context) (*models.Stats, error)
}

type ChainReader interface {
	OwnedCertificates(ctx context.Context, owner string) ([]models.OwnedObject, error)
	WaitForObject(ctx context.Context, owner, objectID string) (*models.OwnedObject, error)
}

// Services bundles the collaborators the handlers dispatch to.
type Services struct {
	Institutions InstitutionService
	Users        UserService
	Certificates CertificateService
	Transactions TransactionService
	Stats        StatsService
	Chain        ChainReader
}

type HTTPServer struct {
	address        string
	svc            Services
	logger         logging.Logger
	jwtSecret      []byte
	requestTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, svc Services, secretKey string, requestTimeout time.Duration) (*HTTPServer, error) {
	if svc.Institutions == nil {
		return nil, errors.New("institution service is required")
	}
	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		svc:            svc,
		jwtSecret:      []byte(secretKey),
		requestTimeout: requestTimeout,
	}, nil
}

// Handler builds the router.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		if s.requestTimeout > 0 {
			api.Use(middleware.Timeout(s.requestTimeout))
		}
		api.Use(s.authenticate)

		api.Get("/institutions", s.getInstitutions)
		api.Post("/institutions", s.registerInstitution)
		api.Put("/institutions", s.registerInstitution)

		api.Get("/users", s.getUser)
		api.Post("/users", s.createUser)

		api.Get("/certificates", s.listCertificates)
		api.Post("/certificates", s.createCertificate)

		api.Get("/transactions", s.listTransactions)
		api.Post("/transactions", s.createTransaction)

		api.Get("/stats", s.getStats)
		api.Post("/track", s.track)

		api.Get("/chain/certificates", s.chainCertificates)
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
