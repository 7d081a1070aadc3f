// Package accounts provides a PostgreSQL-backed repository for account
// records: the stored account key and the token id used for revocation.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/dbx"
	"github.com/avoronov/travelog/internal/server/auth"
	"github.com/avoronov/travelog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. A duplicate (username, role) pair yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (username, role, account_key, token_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.Role.String(), account.Key, account.TokenID).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByUsernameRole returns the account for the given (username, role) pair.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUsernameRole(ctx context.Context, username string, role auth.Role) (*models.Account, error) {
	query := `
		SELECT id, username, role, account_key, token_id, created_at FROM accounts
		WHERE username = $1 AND role = $2
	`
	account := &models.Account{}
	var roleStr string
	err := r.db.QueryRowContext(ctx, query, username, role.String()).
		Scan(&account.ID, &account.Username, &roleStr, &account.Key, &account.TokenID, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Role, err = auth.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt role for account %s: %w", account.ID, err)
	}

	return account, nil
}

// UpdateKey replaces the stored account key (password change).
func (r *PostgresRepository) UpdateKey(ctx context.Context, accountID string, key []byte) error {
	query := `
		UPDATE accounts SET account_key = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, accountID, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
