package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/homes"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can pick per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Homes(db dbx.DBTX) homes.Repository
}
