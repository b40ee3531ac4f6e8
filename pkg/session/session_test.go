package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: testSecret})
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{Secret: []byte("short")})
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	m := newManager(t)

	token, exp, err := m.Issue(Session{UserID: "u1", Name: "Ada", Email: "ada@example.com", CMSToken: "cms-123"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), exp, time.Minute)

	s, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, "ada@example.com", s.Email)
	assert.Equal(t, "cms-123", s.CMSToken)
}

func TestParseRejects(t *testing.T) {
	m := newManager(t)

	t.Run("expired", func(t *testing.T) {
		token, _, err := m.Issue(Session{UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)})
		require.NoError(t, err)
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewManager(Config{Secret: []byte("another-secret-of-32-bytes-long!")})
		require.NoError(t, err)
		token, _, err := other.Issue(Session{UserID: "u1"})
		require.NoError(t, err)
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewManager(Config{Secret: testSecret, Issuer: "someone-else"})
		require.NoError(t, err)
		token, _, err := other.Issue(Session{UserID: "u1"})
		require.NoError(t, err)
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestIssueRequiresUser(t *testing.T) {
	_, _, err := newManager(t).Issue(Session{})
	assert.Error(t, err)
}

func TestFromRequest(t *testing.T) {
	m := newManager(t)
	token, exp, err := m.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.SetCookie(rec, token, exp)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		s, err := m.FromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		s, err := m.FromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := m.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestCookieFlags(t *testing.T) {
	m, err := NewManager(Config{Secret: testSecret, SecureCookie: true, CookieName: "sid"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, "tok", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), &Session{UserID: "u1"})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}
