package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

func newAuthenticator(t *testing.T) (*SessionAuthenticator, *session.Manager) {
	t.Helper()
	m, err := session.NewManager(session.Config{Secret: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)
	return NewSessionAuthenticator(m, nil), m
}

func issue(t *testing.T, m *session.Manager, userID string) string {
	t.Helper()
	token, _, err := m.Issue(session.Session{UserID: userID, CMSToken: "cms-" + userID})
	require.NoError(t, err)
	return token
}

// captureSession records whether next was reached and the session it saw.
func captureSession(called *bool, got **session.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingSession(t *testing.T) {
	auth, _ := newAuthenticator(t)

	var called bool
	var got *session.Session
	handler := auth.Middleware(captureSession(&called, &got))

	req := httptest.NewRequest("POST", "/api/cheatsheets", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestMiddleware_InvalidSession(t *testing.T) {
	auth, _ := newAuthenticator(t)

	var called bool
	var got *session.Session
	handler := auth.Middleware(captureSession(&called, &got))

	req := httptest.NewRequest("GET", "/api/cheatsheets/my", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_ValidSession(t *testing.T) {
	auth, m := newAuthenticator(t)
	token := issue(t, m, "u1")

	tests := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: m.CookieName(), Value: token})
			},
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var got *session.Session
			handler := auth.Middleware(captureSession(&called, &got))

			req := httptest.NewRequest("GET", "/api/cheatsheets/my", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, got)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, "cms-u1", got.CMSToken)
		})
	}
}

func TestOptional(t *testing.T) {
	auth, m := newAuthenticator(t)

	t.Run("without session", func(t *testing.T) {
		var called bool
		var got *session.Session
		handler := auth.Optional(captureSession(&called, &got))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.True(t, called)
		assert.Nil(t, got)
	})

	t.Run("with session", func(t *testing.T) {
		var called bool
		var got *session.Session
		handler := auth.Optional(captureSession(&called, &got))

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: m.CookieName(), Value: issue(t, m, "u2")})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.True(t, called)
		require.NotNil(t, got)
		assert.Equal(t, "u2", got.UserID)
	})
}

func TestRedirect(t *testing.T) {
	auth, m := newAuthenticator(t)

	var called bool
	var got *session.Session
	handler := auth.Redirect("/")(captureSession(&called, &got))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/editor", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	req := httptest.NewRequest("GET", "/editor", nil)
	req.AddCookie(&http.Cookie{Name: m.CookieName(), Value: issue(t, m, "u3")})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}
