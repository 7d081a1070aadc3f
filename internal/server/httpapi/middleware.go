package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/avoronov/travelog/internal/common"
	"github.com/avoronov/travelog/internal/server/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionMiddleware is the trust boundary for authenticated endpoints: it
// reads the session cookie, verifies the token signature, and requires the
// embedded token version to still be current. Stale and expired sessions get
// the same 401 as missing ones.
func (s *Server) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		session, err := s.auth.AuthenticateSession(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromContext returns the session stored by SessionMiddleware.
// Only call from handlers behind the middleware.
func sessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey).(*auth.Session)
	return session
}
