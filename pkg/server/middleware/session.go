package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/logging"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

// SessionAuthenticator resolves editor sessions and fails closed when none
// is present.
type SessionAuthenticator struct {
	Sessions *session.Manager
	Logger   *zap.Logger
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(sessions *session.Manager, logger *zap.Logger) *SessionAuthenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionAuthenticator{Sessions: sessions, Logger: logger}
}

func (a *SessionAuthenticator) resolve(r *http.Request) (*session.Session, bool) {
	s, err := a.Sessions.FromRequest(r)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			logging.FromContext(r.Context(), a.Logger).Debug("rejected session", zap.Error(err))
		}
		return nil, false
	}
	return s, true
}

// Middleware answers 401 before calling next when the request carries no
// valid session. Otherwise the session is available via session.FromContext.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.resolve(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
	})
}

// Optional attaches the session when one is present and never rejects.
func (a *SessionAuthenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := a.resolve(r); ok {
			r = r.WithContext(session.NewContext(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// Redirect sends requests without a valid session to target.
func (a *SessionAuthenticator) Redirect(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := a.resolve(r)
			if !ok {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}
