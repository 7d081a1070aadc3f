// Package httpapi exposes the authentication core over a thin HTTP surface:
// challenge issuance, challenge–response login with a session cookie, logout,
// and password change.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/logging"
	"github.com/avoronov/travelog/internal/server/config"
	"github.com/avoronov/travelog/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// genericAuthFailure is the single message every authentication failure maps
// to. Anything more granular would tell an attacker which stage failed.
const genericAuthFailure = "wrong username or password"

const maxBodySize = 1 << 16

type Server struct {
	config *config.Config
	auth   *services.AuthService
	logger logging.Logger
}

func NewServer(cfg *config.Config, auth *services.AuthService, logger logging.Logger) *Server {
	return &Server{
		config: cfg,
		auth:   auth,
		logger: logger.With("module", "http_server"),
	}
}

// Router returns a chi.Router with all API routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/params", s.Params)
		r.Post("/register", s.Register)
		r.Post("/challenge", s.Challenge)
		r.Post("/login", s.Login)
		r.Post("/password", s.ChangePassword)

		r.With(s.SessionMiddleware).Post("/logout", s.Logout)
		r.With(s.SessionMiddleware).Get("/session", s.Session)
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service-layer sentinels to HTTP responses. The
// unauthorized branch always carries the generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, genericAuthFailure)
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInvalidRole):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "account already exists")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, v *T) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
