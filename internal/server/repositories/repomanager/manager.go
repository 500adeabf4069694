package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/safetrace/internal/dbx"
	"github.com/dmitrijs2005/safetrace/internal/server/repositories/owners"
	"github.com/dmitrijs2005/safetrace/internal/server/repositories/vaults"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Owners(db dbx.DBTX) owners.Repository
	Vaults(db dbx.DBTX) vaults.Repository
}
