// Package server provides the HTTP server for cheatsheethub.
//
// The Server holds the router and everything handlers need: configuration,
// the logger, the content and editor stores, the session manager, and the
// Markdown renderer. Routes are registered by the endpoints subpackage:
//
//	srv := server.NewServer(provider, logger, content, editor, health, sessions, renderer)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
//	    logger.Fatal("server stopped", zap.Error(err))
//	}
//
// Every request passes through proxy-header handling, panic recovery, and
// an Apache-format access log with the sign-in token masked.
package server
