package endpoints

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/audit"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

// SessionResponse describes the signed-in user.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterAuthEndpoints registers session introspection and the sign-in
// and sign-out hooks. Tokens are minted by the external auth provider.
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.Handle("/api/session", s.SessionMiddleware.Middleware(handleSession())).Methods("GET")
	s.Router.HandleFunc("/auth/callback", handleAuthCallback(s)).Methods("GET")
	s.Router.HandleFunc("/auth/signout", handleSignOut(s)).Methods("POST")
}

func handleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			respondUnauthorized(w)
			return
		}
		respondWithJSON(w, http.StatusOK, SessionResponse{
			UserID:    sess.UserID,
			Name:      sess.Name,
			Email:     sess.Email,
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

func handleAuthCallback(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		sess, err := s.Sessions.Parse(token)
		if err != nil {
			requestLogger(s, r).Info("rejected sign-in token", zap.Error(err))
			s.Audit.Log(audit.SessionEvent{
				ClientIP:     clientIP(r),
				Operation:    audit.OperationSignIn,
				ErrorMessage: err.Error(),
			})
			respondUnauthorized(w)
			return
		}

		s.Sessions.SetCookie(w, token, sess.ExpiresAt)
		requestLogger(s, r).Info("signed in", zap.String("user_id", sess.UserID))
		s.Audit.Log(audit.SessionEvent{
			UserID:    sess.UserID,
			ClientIP:  clientIP(r),
			Operation: audit.OperationSignIn,
			Success:   true,
		})
		http.Redirect(w, r, "/editor", http.StatusSeeOther)
	}
}

func handleSignOut(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The cookie may already be expired or tampered with.
		var userID string
		if c, err := r.Cookie(s.Sessions.CookieName()); err == nil {
			if sess, err := s.Sessions.Parse(c.Value); err == nil {
				userID = sess.UserID
			}
		}
		s.Sessions.ClearCookie(w)
		s.Audit.Log(audit.SessionEvent{
			UserID:    userID,
			ClientIP:  clientIP(r),
			Operation: audit.OperationSignOut,
			Success:   true,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
