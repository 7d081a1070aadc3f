package repomanager

import (
	"context"
	"database/sql"

	"github.com/avoronov/travelog/internal/dbx"
	"github.com/avoronov/travelog/internal/server/migrations"
	"github.com/avoronov/travelog/internal/server/repositories/accounts"
	"github.com/avoronov/travelog/internal/server/repositories/tokenversions"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresManager struct{}

func NewPostgresManager() *PostgresManager {
	return &PostgresManager{}
}

func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresManager) TokenVersions(db dbx.DBTX) tokenversions.Repository {
	return tokenversions.NewPostgresRepository(db)
}
