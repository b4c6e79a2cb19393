// Package repomanager wires repository constructors to a database handle and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/hobbleabbas/bapu-gateway/internal/dbx"
	"github.com/hobbleabbas/bapu-gateway/internal/repositories/users"
	"github.com/hobbleabbas/bapu-gateway/internal/repositories/wallets"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Wallets(db dbx.DBTX) wallets.Repository
}
