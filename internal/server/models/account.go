// Package models holds the server-side persistence models.
package models

import (
	"time"

	"github.com/avoronov/travelog/internal/server/auth"
)

// Account is a registered identity. Key is the 256-bit account key derived
// client-side from (username, passphrase, salt); the passphrase itself never
// reaches the server. TokenID groups all session tokens issued for this
// account so they can be revoked together by bumping the token version.
type Account struct {
	ID        string
	Username  string
	Role      auth.Role
	Key       []byte
	TokenID   string
	CreatedAt time.Time
}
