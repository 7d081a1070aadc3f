// Package tokenversions provides a PostgreSQL-backed repository for the
// per-token-id version counters behind session revocation.
package tokenversions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, tokenID string) (int64, error) {
	query := `
		SELECT current_version FROM token_versions
		WHERE token_id = $1
	`
	var version int64
	if err := r.db.QueryRowContext(ctx, query, tokenID).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return version, nil
}

func (r *PostgresRepository) Init(ctx context.Context, tokenID string) error {
	query := `
		INSERT INTO token_versions (token_id, current_version)
		VALUES ($1, 0)
		ON CONFLICT (token_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, tokenID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Increment is a single-statement RMW, so concurrent bumps for the same token
// id serialize in the database and no update is lost.
func (r *PostgresRepository) Increment(ctx context.Context, tokenID string) (int64, error) {
	query := `
		UPDATE token_versions SET current_version = current_version + 1, updated_at = now()
		WHERE token_id = $1
		RETURNING current_version
	`
	var version int64
	if err := r.db.QueryRowContext(ctx, query, tokenID).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return version, nil
}
