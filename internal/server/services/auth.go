// Package services contains server-side business logic. This file implements
// AuthService: the challenge–response authenticator plus account signup,
// logout, and password change. The passphrase and the derived account key
// never cross the wire; clients prove key possession by answering a signed
// challenge with an HMAC.
package services

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/cryptox"
	"github.com/avoronov/travelog/internal/dbx"
	"github.com/avoronov/travelog/internal/logging"
	"github.com/avoronov/travelog/internal/server/auth"
	"github.com/avoronov/travelog/internal/server/config"
	"github.com/avoronov/travelog/internal/server/models"
	"github.com/avoronov/travelog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// LoginResult is what a successful authentication yields: the signed session
// token and the cookie parameters the transport layer should apply.
type LoginResult struct {
	Token      string
	ExpiresAt  time.Time
	Persistent bool
}

type AuthService struct {
	db          *sql.DB
	repos       repomanager.RepositoryManager
	tokens      *TokenStore
	logger      logging.Logger
	fallbackKey []byte

	challengeSecret   []byte
	challengeIssuer   string
	challengeValidity time.Duration

	sessionSecret   []byte
	sessionValidity time.Duration
	stayValidity    time.Duration
}

func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, tokens *TokenStore, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:     db,
		repos:  repos,
		tokens: tokens,
		logger: logger.With("module", "auth_service"),
		// Fixed per-process key for the dummy comparison on unknown
		// usernames, so that path costs one HMAC like the real one.
		fallbackKey:       common.GenerateRandByteArray(cryptox.AccountKeySize),
		challengeSecret:   []byte(cfg.ChallengeSecret),
		challengeIssuer:   cfg.ChallengeIssuer,
		challengeValidity: cfg.ChallengeValidityDuration,
		sessionSecret:     []byte(cfg.SessionSecret),
		sessionValidity:   cfg.SessionValidityDuration,
		stayValidity:      cfg.StaySessionValidityDuration,
	}
}

// Register creates an account from a client-derived key (64 hex chars) and
// initializes its token version at 0, in one transaction.
func (s *AuthService) Register(ctx context.Context, username string, role auth.Role, keyHex string) (*models.Account, error) {
	if username == "" {
		return nil, common.ErrorValidation
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != cryptox.AccountKeySize {
		return nil, common.ErrorValidation
	}

	account := &models.Account{
		Username: username,
		Role:     role,
		Key:      key,
		TokenID:  uuid.NewString(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Accounts(tx).Create(ctx, account)
		if err != nil {
			return err
		}
		account = created
		return s.repos.TokenVersions(tx).Init(ctx, account.TokenID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

// IssueChallenge signs a challenge naming the claimed identity. Account
// existence is deliberately not checked here: a challenge is issued for any
// claimed username, so this endpoint cannot be used for enumeration.
func (s *AuthService) IssueChallenge(ctx context.Context, username string, role auth.Role) (string, error) {
	challenge, err := auth.IssueChallenge(auth.Identity{Username: username, Role: role},
		s.challengeSecret, s.challengeIssuer, s.challengeValidity)
	if err != nil {
		s.logger.Error(ctx, "challenge signing failed", "error", err.Error())
		return "", common.ErrorInternal
	}
	return challenge, nil
}

// authenticate runs the full challenge–response check and returns the account
// on success. Every failure cause — expired or tampered challenge, unknown
// account, wrong response — collapses into ErrorUnauthorized; the granular
// cause goes to the server log only.
func (s *AuthService) authenticate(ctx context.Context, challenge, responseHex string) (*models.Account, error) {
	identity, err := auth.VerifyChallenge(challenge, s.challengeSecret, s.challengeIssuer)
	if err != nil {
		s.logger.Info(ctx, "challenge rejected", "reason", err.Error())
		return nil, common.ErrorUnauthorized
	}

	account, err := s.repos.Accounts(s.db).GetByUsernameRole(ctx, identity.Username, identity.Role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn an HMAC against the fallback key so unknown usernames
			// take the same path as wrong responses
			cryptox.VerifyResponse([]byte(challenge), s.fallbackKey, responseHex)
			s.logger.Info(ctx, "login for unknown account", "username", identity.Username, "role", identity.Role.String())
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "account lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	// the HMAC input is the exact challenge string as issued, never a
	// re-serialized form
	if !cryptox.VerifyResponse([]byte(challenge), account.Key, responseHex) {
		s.logger.Info(ctx, "response mismatch", "username", identity.Username)
		return nil, common.ErrorUnauthorized
	}

	return account, nil
}

// Login authenticates a (challenge, response) pair and mints a session token
// embedding the account's current token version. stay selects the long-lived
// persistent-cookie session.
func (s *AuthService) Login(ctx context.Context, challenge, responseHex string, stay bool) (*LoginResult, error) {
	account, err := s.authenticate(ctx, challenge, responseHex)
	if err != nil {
		return nil, err
	}

	version, err := s.tokens.CurrentVersion(ctx, account.TokenID)
	if err != nil {
		s.logger.Error(ctx, "token version lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}
	if version == InfiniteVersion {
		// registration always initializes a version row, so this means the
		// schema is in a bad state, not that the caller did anything wrong
		s.logger.Error(ctx, "no token version record", "token_id", account.TokenID)
		return nil, common.ErrorInternal
	}

	validity := s.sessionValidity
	if stay {
		validity = s.stayValidity
	}

	session := &auth.Session{
		AccountID:    account.ID,
		Username:     account.Username,
		Role:         account.Role,
		TokenID:      account.TokenID,
		TokenVersion: version,
	}
	token, err := auth.GenerateSessionToken(session, s.sessionSecret, validity)
	if err != nil {
		s.logger.Error(ctx, "session signing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login", "username", account.Username, "role", account.Role.String(), "stay", stay)

	return &LoginResult{Token: token, ExpiresAt: time.Now().Add(validity), Persistent: stay}, nil
}

// AuthenticateSession is the trust-boundary check run on every authenticated
// request: verify the token signature, then require an up-to-date version and
// an unexpired token. Stale and expired sessions both read as unauthorized.
func (s *AuthService) AuthenticateSession(ctx context.Context, tokenString string) (*auth.Session, error) {
	session, err := auth.ParseSessionToken(tokenString, s.sessionSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	current, err := s.tokens.CurrentVersion(ctx, session.TokenID)
	if err != nil {
		s.logger.Error(ctx, "token version lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}
	if session.TokenVersion < current {
		s.logger.Info(ctx, "stale session", "username", session.Username)
		return nil, common.ErrorUnauthorized
	}

	if session.Expired(time.Now()) {
		return nil, common.ErrorUnauthorized
	}

	return session, nil
}

// Logout bumps the token version, invalidating every session token issued for
// the account so far.
func (s *AuthService) Logout(ctx context.Context, session *auth.Session) error {
	if _, err := s.tokens.Bump(ctx, session.TokenID); err != nil {
		s.logger.Error(ctx, "logout bump failed", "error", err.Error())
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "logout", "username", session.Username)
	return nil
}

// ChangePassword authenticates a (challenge, response) pair against the OLD
// key, then replaces the stored key and bumps the token version in one
// transaction. The cache sees the new version only after the commit.
func (s *AuthService) ChangePassword(ctx context.Context, challenge, responseHex, newKeyHex string) error {
	account, err := s.authenticate(ctx, challenge, responseHex)
	if err != nil {
		return err
	}

	newKey, err := hex.DecodeString(newKeyHex)
	if err != nil || len(newKey) != cryptox.AccountKeySize {
		return common.ErrorValidation
	}

	var newVersion int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Accounts(tx).UpdateKey(ctx, account.ID, newKey); err != nil {
			return err
		}
		v, err := s.repos.TokenVersions(tx).Increment(ctx, account.TokenID)
		if err != nil {
			return err
		}
		newVersion = v
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "password change failed", "error", err.Error())
		return common.ErrorInternal
	}

	s.tokens.Observe(account.TokenID, newVersion)
	s.logger.Info(ctx, "password changed", "username", account.Username)
	return nil
}
