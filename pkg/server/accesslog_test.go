package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/handlers"
	"github.com/stretchr/testify/assert"
)

func TestRedactURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"token masked", "/auth/callback?token=eyJhbGciOiJIUzI1NiJ9.e30.sig", "/auth/callback?token=REDACTED"},
		{"other params kept", "/auth/callback?next=%2Feditor&token=abc", "/auth/callback?next=%2Feditor&token=REDACTED"},
		{"no token untouched", "/search?q=git+rebase&z=1", "/search?q=git+rebase&z=1"},
		{"no query", "/cheatsheets/git-basics", "/cheatsheets/git-basics"},
		{"unparsable", "*", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactURI(tt.uri))
		})
	}
}

func TestWriteAccessLog(t *testing.T) {
	req := httptest.NewRequest("GET", "/auth/callback?token=secret-session-token", nil)
	u, _ := url.Parse(req.RequestURI)

	var buf bytes.Buffer
	writeAccessLog(&buf, handlers.LogFormatterParams{
		Request:    req,
		URL:        *u,
		TimeStamp:  time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
		StatusCode: http.StatusSeeOther,
		Size:       0,
	})

	assert.Equal(t, "192.0.2.1 - - [09/Mar/2024:10:00:00 +0000] \"GET /auth/callback?token=REDACTED HTTP/1.1\" 303 0\n", buf.String())
}
