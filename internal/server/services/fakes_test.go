package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/dbx"
	"github.com/avoronov/travelog/internal/logging"
	"github.com/avoronov/travelog/internal/server/auth"
	"github.com/avoronov/travelog/internal/server/config"
	"github.com/avoronov/travelog/internal/server/models"
	accountsrepo "github.com/avoronov/travelog/internal/server/repositories/accounts"
	tokenversionsrepo "github.com/avoronov/travelog/internal/server/repositories/tokenversions"
	"github.com/avoronov/travelog/internal/server/tokencache"
)

// --- fakes ---

type fakeAccountsRepo struct {
	byKey     map[string]*models.Account // username + "|" + role
	nextID    int
	getCalls  int
	createErr error
	updateErr error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{byKey: map[string]*models.Account{}, nextID: 1}
}

func accKey(username string, role auth.Role) string {
	return username + "|" + role.String()
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	k := accKey(a.Username, a.Role)
	if _, ok := f.byKey[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	a.ID = "acc-" + a.Username
	a.CreatedAt = time.Now()
	f.byKey[k] = a
	return a, nil
}

func (f *fakeAccountsRepo) GetByUsernameRole(ctx context.Context, username string, role auth.Role) (*models.Account, error) {
	f.getCalls++
	a, ok := f.byKey[accKey(username, role)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccountsRepo) UpdateKey(ctx context.Context, accountID string, key []byte) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, a := range f.byKey {
		if a.ID == accountID {
			a.Key = key
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeVersionsRepo struct {
	versions map[string]int64
	getCalls int
	getErr   error
	incErr   error
}

func newFakeVersionsRepo() *fakeVersionsRepo {
	return &fakeVersionsRepo{versions: map[string]int64{}}
}

func (f *fakeVersionsRepo) Get(ctx context.Context, tokenID string) (int64, error) {
	f.getCalls++
	if f.getErr != nil {
		return 0, f.getErr
	}
	v, ok := f.versions[tokenID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return v, nil
}

func (f *fakeVersionsRepo) Init(ctx context.Context, tokenID string) error {
	if _, ok := f.versions[tokenID]; !ok {
		f.versions[tokenID] = 0
	}
	return nil
}

func (f *fakeVersionsRepo) Increment(ctx context.Context, tokenID string) (int64, error) {
	if f.incErr != nil {
		return 0, f.incErr
	}
	if _, ok := f.versions[tokenID]; !ok {
		return 0, common.ErrorNotFound
	}
	f.versions[tokenID]++
	return f.versions[tokenID], nil
}

type fakeRepoManager struct {
	a *fakeAccountsRepo
	v *fakeVersionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.a }
func (m *fakeRepoManager) TokenVersions(db dbx.DBTX) tokenversionsrepo.Repository {
	return m.v
}

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ChallengeSecret = "test-challenge-secret"
	cfg.SessionSecret = "test-session-secret"
	return cfg
}

func newAuthFixture(t *testing.T) (*AuthService, *TokenStore, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	rm := &fakeRepoManager{a: newFakeAccountsRepo(), v: newFakeVersionsRepo()}
	store := NewTokenStore(db, rm, tokencache.NewMemory())
	svc := NewAuthService(db, rm, store, testConfig(), testLogger())
	return svc, store, rm, mock, db
}
