// Package audit records editor activity as RFC5424 syslog lines.
//
// Every cheatsheet write and every sign-in or sign-out made through the site
// produces one event naming the user, the client address, the operation, and
// its outcome:
//
//	<86>1 2024-03-09T10:00:00.000Z web-1 cheatsheethub 4121 cheatsheet [action@32473 operation="create" result="success"][auth@32473 user="u1"]... u1 created cheatsheet git-basics
//
// Audit lines are written apart from the zap application log.
package audit
