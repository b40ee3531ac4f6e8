package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/audit"
	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/middleware"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

type Server struct {
	Router   *mux.Router
	Config   *config.Provider
	Logger   *zap.Logger
	Renderer *markdown.Renderer

	ContentStore store.ContentStore
	EditorStore  store.EditorStore
	HealthStore  store.HealthStore

	Sessions          *session.Manager
	SessionMiddleware *middleware.SessionAuthenticator

	// AccessLog receives one Apache common log line per request.
	AccessLog io.Writer

	// Audit records editor writes and sign-ins. Nil disables auditing.
	Audit *audit.Logger

	srv *http.Server
}

func NewServer(
	cfg *config.Provider,
	logger *zap.Logger,
	contentStore store.ContentStore,
	editorStore store.EditorStore,
	healthStore store.HealthStore,
	sessions *session.Manager,
	renderer *markdown.Renderer,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID(logger))

	s := &Server{
		Router:            router,
		Config:            cfg,
		Logger:            logger,
		Renderer:          renderer,
		ContentStore:      contentStore,
		EditorStore:       editorStore,
		HealthStore:       healthStore,
		Sessions:          sessions,
		SessionMiddleware: middleware.NewSessionAuthenticator(sessions, logger),
		AccessLog:         os.Stdout,
	}
	if cfg.Get().AuditEnabled {
		s.Audit = audit.NewLogger(os.Stdout)
	}
	s.srv = &http.Server{
		Addr:              cfg.Get().Addr(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Page renders wait on the CMS, so leave room beyond its timeout.
		WriteTimeout: cfg.Get().CMSTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router wrapped in the server-wide middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.Logger)),
		handlers.PrintRecoveryStack(false),
	)(h)
	h = handlers.CustomLoggingHandler(s.AccessLog, h, writeAccessLog)
	return handlers.ProxyHeaders(h)
}

// AccessToken returns the CMS credential forwarded for a protected request.
// In static mode this is the server-held token, read at call time so a
// reloaded configuration takes effect. In session mode it is the token
// carried by the caller's session, and ok is false when there is none.
func (s *Server) AccessToken(r *http.Request) (token string, ok bool) {
	cfg := s.Config.Get()
	if cfg.CMSTokenMode == config.TokenModeSession {
		sess, found := session.FromContext(r.Context())
		if !found || sess.CMSToken == "" {
			return "", false
		}
		return sess.CMSToken, true
	}
	return cfg.CMSStaticToken, true
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	s.srv.Handler = s.Handler()
	return s.srv.ListenAndServe()
}

// StartWithListener serves on l instead of the configured address.
func (s *Server) StartWithListener(l net.Listener) error {
	s.srv.Handler = s.Handler()
	return s.srv.Serve(l)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
