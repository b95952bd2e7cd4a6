// Package server wires configuration, storage, services and the HTTP
// adapter together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/certledger/internal/logging"
	"github.com/dmitrijs2005/certledger/internal/server/chain"
	"github.com/dmitrijs2005/certledger/internal/server/config"
	"github.com/dmitrijs2005/certledger/internal/server/httpapi"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

// seams for tests
var (
	openDB         = repomanager.Open
	newRepoManager = func() repomanager.RepositoryManager { return repomanager.NewPostgresRepositoryManager() }
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services httpapi.Services
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	svc := httpapi.Services{
		Institutions: services.NewInstitutionService(db, rm),
		Users:        services.NewUserService(db, rm, c),
		Certificates: services.NewCertificateService(db, rm),
		Transactions: services.NewTransactionService(db, rm),
		Stats:        services.NewStatsService(db, rm),
		Chain:        chain.NewClient(c.ChainRPCURL, c.CertificateObjectType, c.ChainLookupAttempts, c.ChainLookupBackoff, logger),
	}

	return &App{config: c, logger: logger, db: db, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a signal arrives, then closes
// the database.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	if !app.config.AuthEnabled() {
		app.logger.Warn(ctx, "no secret key configured, session tokens disabled")
	}

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err)
		}
	}()

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.services, app.config.SecretKey, app.config.RequestTimeout)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}
