package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/certledger/internal/dbx"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/certificates"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/institutions"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/stats"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/certledger/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Institutions(db dbx.DBTX) institutions.Repository
	Certificates(db dbx.DBTX) certificates.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Stats(db dbx.DBTX) stats.Repository
}
