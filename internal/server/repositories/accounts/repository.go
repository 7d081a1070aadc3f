package accounts

import (
	"context"

	"github.com/avoronov/travelog/internal/server/auth"
	"github.com/avoronov/travelog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsernameRole(ctx context.Context, username string, role auth.Role) (*models.Account, error)
	UpdateKey(ctx context.Context, accountID string, key []byte) error
}
