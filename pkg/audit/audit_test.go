package audit

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	l := NewLogger(buf)
	l.hostname = "web-1"
	l.pid = 4121
	l.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Log(CheatsheetEvent{
		UserID:       "u1",
		ClientIP:     "192.168.1.1",
		Operation:    OperationCreate,
		CheatsheetID: "cs-1",
		Slug:         "git-basics",
		Success:      true,
	})

	want := `<86>1 2024-03-09T10:00:00.000Z web-1 cheatsheethub 4121 cheatsheet ` +
		`[action@32473 operation="create" result="success"]` +
		`[auth@32473 user="u1"]` +
		`[client@32473 ip="192.168.1.1"]` +
		`[subject@32473 cheatsheet="cs-1" slug="git-basics"]` +
		` u1 created cheatsheet git-basics` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestLoggerNilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogger(nil).Log(SessionEvent{UserID: "u1", Operation: OperationSignIn, Success: true})
	})

	var l *Logger
	assert.NotPanics(t, func() {
		l.Log(SessionEvent{UserID: "u1", Operation: OperationSignIn, Success: true})
	})
}

func TestLoggerConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log(SessionEvent{UserID: "u1", Operation: OperationSignOut, Success: true})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " u1 signed out"), line)
	}
}

func TestCheatsheetEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   CheatsheetEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "update by slug",
			event:   CheatsheetEvent{UserID: "u1", Operation: OperationUpdate, CheatsheetID: "cs-1", Slug: "git", Success: true},
			wantMsg: "u1 updated cheatsheet git",
			wantSev: SeverityInfo,
		},
		{
			name:    "delete by id",
			event:   CheatsheetEvent{UserID: "u1", Operation: OperationDelete, CheatsheetID: "cs-1", Success: true},
			wantMsg: "u1 deleted cheatsheet cs-1",
			wantSev: SeverityInfo,
		},
		{
			name:    "failed create",
			event:   CheatsheetEvent{UserID: "u1", Operation: OperationCreate, ErrorMessage: "forbidden"},
			wantMsg: "u1 tried to create cheatsheet a cheatsheet: forbidden",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "cheatsheet", tt.event.MessageID())
			assert.Equal(t, tt.wantMsg, tt.event.Message())
			assert.Equal(t, tt.wantSev, tt.event.Severity())
			assert.Equal(t, FacilityAuthPriv, tt.event.Facility())
		})
	}
}

func TestCheatsheetEventWithoutSubject(t *testing.T) {
	sd := CheatsheetEvent{UserID: "u1", Operation: OperationCreate}.StructuredData()
	assert.NotContains(t, sd, SDIDSubject)
	assert.Equal(t, "failure", sd[SDIDAction]["result"])
}

func TestSessionEvent(t *testing.T) {
	in := SessionEvent{UserID: "u1", ClientIP: "10.0.0.1", Operation: OperationSignIn, Success: true}
	assert.Equal(t, "u1 signed in", in.Message())
	assert.Equal(t, FacilityAuth, in.Facility())
	assert.Equal(t, "u1", in.StructuredData()[SDIDAuth]["user"])

	rejected := SessionEvent{ClientIP: "10.0.0.1", Operation: OperationSignIn, ErrorMessage: "invalid session"}
	assert.Equal(t, "unknown user failed to sign-in: invalid session", rejected.Message())
	assert.Equal(t, SeverityWarning, rejected.Severity())
	assert.NotContains(t, rejected.StructuredData(), SDIDAuth)
}

func TestEscapeSDValue(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\]d"`, escapeSDValue(`a"b\c]d`))
}
