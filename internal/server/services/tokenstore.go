package services

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/server/repositories/repomanager"
	"github.com/avoronov/travelog/internal/server/tokencache"
)

// InfiniteVersion is the sentinel cached for token ids with no durable
// record: no session token can ever carry a version this high, so such
// tokens are permanently invalid.
const InfiniteVersion int64 = math.MaxInt64

// TokenStore answers "what is the currently valid version for this token id"
// on every authenticated request, and bumps that version on logout and
// password change. The injected cache is the fast path; durable storage is
// the source of truth and the cache is written only after a durable read or
// write succeeds.
type TokenStore struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	cache tokencache.Cache
}

func NewTokenStore(db *sql.DB, repos repomanager.RepositoryManager, cache tokencache.Cache) *TokenStore {
	return &TokenStore{db: db, repos: repos, cache: cache}
}

// CurrentVersion returns the valid version for tokenID. Cache miss falls back
// to durable storage and repopulates the cache; a missing durable record is
// cached as InfiniteVersion. Storage failures propagate to the caller.
func (s *TokenStore) CurrentVersion(ctx context.Context, tokenID string) (int64, error) {
	if v, ok := s.cache.Get(tokenID); ok {
		return v, nil
	}

	v, err := s.repos.TokenVersions(s.db).Get(ctx, tokenID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.cache.Set(tokenID, InfiniteVersion)
			return InfiniteVersion, nil
		}
		return 0, err
	}

	s.cache.Set(tokenID, v)
	return v, nil
}

// Bump invalidates all session tokens issued for tokenID so far. The durable
// increment is a single read-modify-write statement; the cache is updated only
// once that statement has succeeded, so a failed bump never poisons the fast
// path.
func (s *TokenStore) Bump(ctx context.Context, tokenID string) (int64, error) {
	v, err := s.repos.TokenVersions(s.db).Increment(ctx, tokenID)
	if err != nil {
		return 0, err
	}

	s.cache.Set(tokenID, v)
	return v, nil
}

// Observe records a version that was bumped durably outside this store, e.g.
// inside the password-change transaction. Cache-only.
func (s *TokenStore) Observe(tokenID string, version int64) {
	s.cache.Set(tokenID, version)
}
