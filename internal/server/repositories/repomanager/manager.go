// Package repomanager wires concrete repositories to database handles so that
// services can run the same repository either on *sql.DB or inside *sql.Tx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avoronov/travelog/internal/dbx"
	"github.com/avoronov/travelog/internal/server/repositories/accounts"
	"github.com/avoronov/travelog/internal/server/repositories/tokenversions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	TokenVersions(db dbx.DBTX) tokenversions.Repository
}
