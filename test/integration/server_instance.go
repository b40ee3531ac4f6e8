package integration

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"
	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/endpoints"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store/directus"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

const (
	sessionSecret = "integration-session-secret-0123456789"
	staticToken   = "static-editor-token"
	staticUserID  = "static-editor"
)

// ServerConfig holds configuration for a test server instance
type ServerConfig struct {
	TokenMode string
}

// DefaultServerConfig returns the default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{TokenMode: config.TokenModeStatic}
}

// ServerInstance is a running site backed by a fake CMS, for a single scenario
type ServerInstance struct {
	Server    *server.Server
	ServerURL string
	Config    ServerConfig
	listener  net.Listener
}

// StartServer starts an in-process server talking to the CMS at cmsURL.
func StartServer(cmsURL string, cfg ServerConfig) (*ServerInstance, error) {
	c := config.Default()
	c.CMSURL = cmsURL
	c.CMSTokenMode = cfg.TokenMode
	c.AuditEnabled = false
	c.CMSStaticToken = staticToken
	c.SessionSecret = sessionSecret
	c.CMSTimeoutSeconds = 5
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client, err := cms.New(c.CMSURL, cms.WithTimeout(c.CMSTimeout()))
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewManager(session.Config{Secret: []byte(c.SessionSecret)})
	if err != nil {
		return nil, err
	}
	renderer, err := markdown.New()
	if err != nil {
		return nil, err
	}

	s := server.NewServer(
		config.NewProvider(c),
		zap.NewNop(),
		directus.NewContentStore(client),
		directus.NewEditorStore(client),
		directus.NewHealthStore(client),
		sessions,
		renderer,
	)
	s.AccessLog = io.Discard
	endpoints.RegisterAll(s)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	instance := &ServerInstance{
		Server:    s,
		ServerURL: "http://" + listener.Addr().String(),
		Config:    cfg,
		listener:  listener,
	}

	go func() {
		_ = s.StartWithListener(listener)
	}()

	if err := waitForServer(instance.ServerURL, 10*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return instance, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = si.Server.Shutdown(ctx)
}

// waitForServer polls the liveness probe until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// newCMS starts a fake CMS with the static editor account registered.
func newCMS() *cmstest.Server {
	srv := cmstest.New()
	srv.AddUser(cmstest.User{ID: staticUserID, Token: staticToken, Admin: true})
	return srv
}
