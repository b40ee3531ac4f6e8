// Package middleware provides HTTP middleware shared by the cheatsheethub
// routes: session resolution for protected endpoints and editor pages, and
// request IDs with request-scoped loggers.
package middleware
