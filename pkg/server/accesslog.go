package server

import (
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/gorilla/handlers"
)

// redactedQueryParams are masked in access log lines. The sign-in callback
// carries the session token in its query string.
var redactedQueryParams = []string{"token"}

const redactedValue = "REDACTED"

// writeAccessLog writes an Apache common log line with sensitive query
// values masked.
func writeAccessLog(w io.Writer, params handlers.LogFormatterParams) {
	req := params.Request

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	username := "-"
	if params.URL.User != nil {
		if name := params.URL.User.Username(); name != "" {
			username = name
		}
	}

	uri := req.RequestURI
	if req.Method == "CONNECT" && req.ProtoMajor == 2 {
		uri = req.Host
	}
	if uri == "" {
		uri = params.URL.RequestURI()
	}

	_, _ = fmt.Fprintf(w, "%s - %s [%s] \"%s %s %s\" %d %d\n",
		host,
		username,
		params.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
		req.Method,
		redactURI(uri),
		req.Proto,
		params.StatusCode,
		params.Size,
	)
}

// redactURI masks the values of redactedQueryParams in a request URI. The
// rest of the URI is left as sent.
func redactURI(uri string) string {
	u, err := url.ParseRequestURI(uri)
	if err != nil || u.RawQuery == "" {
		return uri
	}
	q := u.Query()
	changed := false
	for _, name := range redactedQueryParams {
		if _, ok := q[name]; ok {
			q[name] = []string{redactedValue}
			changed = true
		}
	}
	if !changed {
		return uri
	}
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
