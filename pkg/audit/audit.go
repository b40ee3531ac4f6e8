package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Structured data IDs (RFC5424 section 6.3.2). 32473 is the enterprise
// number reserved for documentation (RFC5612).
const (
	SDIDAuth    = "auth@32473"
	SDIDSubject = "subject@32473"
	SDIDAction  = "action@32473"
	SDIDClient  = "client@32473"
)

// Syslog facility constants
const (
	FacilityAuth     = 4  // LOG_AUTH - security/authorization messages
	FacilityAuthPriv = 10 // LOG_AUTHPRIV - security/authorization messages (private)
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarning                   // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

const appName = "cheatsheethub"

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger writes audit events in RFC5424 syslog format. It is safe for
// concurrent use.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	pid      int
	now      func() time.Time
}

// NewLogger creates a logger writing to w. A nil w discards events.
func NewLogger(w io.Writer) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   w,
		hostname: hostname,
		pid:      os.Getpid(),
		now:      time.Now,
	}
}

// Log writes an audit event in RFC5424 syslog format
// Format: <PRI>VERSION TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Log(event Event) {
	if l == nil || l.writer == nil {
		return
	}

	pri := event.Facility()*8 + int(event.Severity())
	timestamp := l.now().UTC().Format("2006-01-02T15:04:05.000Z")

	sd := formatStructuredData(event.StructuredData())
	if sd == "" {
		sd = "-"
	}
	hostname := l.hostname
	if hostname == "" {
		hostname = "-"
	}

	line := fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		pri,
		timestamp,
		hostname,
		appName,
		l.pid,
		event.MessageID(),
		sd,
		event.Message(),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

// formatStructuredData formats the structured data according to RFC5424,
// with elements and parameters in name order.
// Format: [sdid param1="value1" param2="value2"][sdid2 ...]
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, sdid := range sortedKeys(sd) {
		params := sd[sdid]
		sb.WriteString("[" + sdid)
		for _, key := range sortedKeys(params) {
			sb.WriteString(" " + key + "=" + escapeSDValue(params[key]))
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeSDValue escapes special characters in structured data values per RFC5424
func escapeSDValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "]", "\\]")
	return "\"" + value + "\""
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
