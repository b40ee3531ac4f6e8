package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer     = "cheatsheethub"
	DefaultCookieName = "cheatsheethub_session"
	DefaultTTL        = 30 * 24 * time.Hour

	minSecretLength = 16
)

var (
	// ErrNoSession is returned when a request carries no session token.
	ErrNoSession = errors.New("no session")

	// ErrInvalidSession is returned for malformed, forged, or expired tokens.
	ErrInvalidSession = errors.New("invalid session")
)

// Session identifies a signed-in editor.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CMSToken  string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims is the JWT payload of a session token.
type Claims struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	CMSToken string `json:"cms_token,omitempty"`
	jwt.RegisteredClaims
}

// Config configures a Manager.
type Config struct {
	Secret       []byte
	Issuer       string
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

// Manager signs, parses, and transports session tokens.
type Manager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	cookieName   string
	secureCookie bool
	now          func() time.Time
}

// NewManager creates a Manager. The secret must be at least 16 bytes.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("session: secret must be at least %d bytes", minSecretLength)
	}
	m := &Manager{
		secret:       cfg.Secret,
		issuer:       cfg.Issuer,
		ttl:          cfg.TTL,
		cookieName:   cfg.CookieName,
		secureCookie: cfg.SecureCookie,
		now:          time.Now,
	}
	if m.issuer == "" {
		m.issuer = DefaultIssuer
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.cookieName == "" {
		m.cookieName = DefaultCookieName
	}
	return m, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Issue signs a token for s. A zero ExpiresAt uses the configured TTL.
func (m *Manager) Issue(s Session) (string, time.Time, error) {
	if s.UserID == "" {
		return "", time.Time{}, errors.New("session: user id is required")
	}
	now := m.now()
	exp := s.ExpiresAt
	if exp.IsZero() {
		exp = now.Add(m.ttl)
	}

	claims := Claims{
		Name:     s.Name,
		Email:    s.Email,
		CMSToken: s.CMSToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   s.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign token: %w", err)
	}
	return token, exp, nil
}

// Parse verifies a token and returns its session.
func (m *Manager) Parse(token string) (*Session, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	var claims Claims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}

	return &Session{
		UserID:    claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		CMSToken:  claims.CMSToken,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// FromRequest resolves the session carried by r, preferring the cookie over
// the Authorization header.
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	token := ""
	if c, err := r.Cookie(m.cookieName); err == nil {
		token = c.Value
	}
	if token == "" {
		h := r.Header.Get("Authorization")
		if len(h) > len("Bearer ") && strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
			token = strings.TrimSpace(h[len("Bearer "):])
		}
	}
	if token == "" {
		return nil, ErrNoSession
	}
	return m.Parse(token)
}

// SetCookie stores token in the session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
