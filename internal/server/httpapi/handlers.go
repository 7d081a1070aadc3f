package httpapi

import (
	"net/http"
	"time"

	"github.com/avoronov/travelog/internal/server/auth"
)

// Params handles GET /api/auth/params. Clients need the salt to derive the
// same account key the server has stored.
func (s *Server) Params(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paramsResponse{Salt: s.config.AccountKeySalt})
}

// Register handles POST /api/auth/register. The key arrives already derived;
// the passphrase never reaches the server.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	account, err := s.auth.Register(r.Context(), req.Username, role, req.Key)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", account.Username, "role", account.Role.String())
	w.WriteHeader(http.StatusCreated)
}

// Challenge handles POST /api/auth/challenge.
func (s *Server) Challenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	challenge, err := s.auth.IssueChallenge(r.Context(), req.Username, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{Challenge: challenge})
}

// Login handles POST /api/auth/login. On success the session token is set as
// an HTTP-only cookie; with stay=true the cookie persists across browser
// restarts, otherwise it is a session cookie.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.auth.Login(r.Context(), req.Challenge, req.Response, req.Stay)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cookie := &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if result.Persistent {
		cookie.Expires = result.ExpiresAt
	}
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusNoContent)
}

// Logout handles POST /api/auth/logout. Requires a valid session; bumps the
// token version so every previously issued session token dies, and clears the
// cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	if err := s.auth.Logout(r.Context(), session); err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles POST /api/auth/password. Identity is proven by a
// challenge-response against the old key, not by a session cookie.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.ChangePassword(r.Context(), req.Challenge, req.Response, req.NewKey); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session.
func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	writeJSON(w, http.StatusOK, sessionResponse{
		AccountID:    session.AccountID,
		Username:     session.Username,
		Role:         session.Role.String(),
		TokenVersion: session.TokenVersion,
	})
}
