package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/endpoints"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store/directus"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

const shutdownTimeout = 15 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CheatSheet Hub web server",
	Long: `Run the CheatSheet Hub web server.

The server requires CHEATSHEETHUB_SESSION_SECRET. In the default static token
mode, editor operations use DIRECTUS_STATIC_TOKEN; in session mode they use
the CMS token carried by each editor's session.

With --watch-config the config file is reloaded when it changes, so the
static token can be rotated without a restart.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		if cfg.SessionSecret == "" {
			fmt.Fprintln(os.Stderr, "CHEATSHEETHUB_SESSION_SECRET is required")
			os.Exit(1)
		}

		logger, err := newLogger(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		watch, _ := cmd.Flags().GetBool("watch-config")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runServer(ctx, cfg, logger, watch); err != nil {
			logger.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 3000, "server listen port (overrides PORT)")
	serveCmd.Flags().StringP("bind-address", "b", "0.0.0.0", "server bind address (overrides BIND_ADDRESS)")
	serveCmd.Flags().Bool("watch-config", false, "reload the config file when it changes")
}

// newServer wires the CMS client, stores, session manager, and renderer
// into a server with every endpoint registered.
func newServer(provider *config.Provider, logger *zap.Logger) (*server.Server, error) {
	cfg := provider.Get()

	client, err := newCMSClient(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(session.Config{
		Secret:       []byte(cfg.SessionSecret),
		Issuer:       cfg.SessionIssuer,
		TTL:          cfg.SessionTTL(),
		CookieName:   cfg.SessionCookieName,
		SecureCookie: cfg.SessionCookieSecure,
	})
	if err != nil {
		return nil, err
	}

	renderer, err := markdown.New(markdown.WithStyle(cfg.HighlightStyle))
	if err != nil {
		return nil, err
	}

	s := server.NewServer(
		provider,
		logger,
		directus.NewContentStore(client),
		directus.NewEditorStore(client),
		directus.NewHealthStore(client),
		sessions,
		renderer,
	)
	endpoints.RegisterAll(s)
	return s, nil
}

// runServer serves until ctx is done, then drains in-flight requests.
func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, watch bool) error {
	provider := config.NewProvider(cfg)
	if cfg.CMSTokenMode == config.TokenModeStatic {
		// Every signed-in editor acts with the static token's CMS privileges.
		logger.Warn("editor writes use the shared static CMS token; set cms_token_mode=session for per-user CMS permissions")
		if cfg.CMSStaticToken == "" {
			logger.Warn("static token mode without DIRECTUS_STATIC_TOKEN; editor operations will fail")
		}
	}

	s, err := newServer(provider, logger)
	if err != nil {
		return err
	}

	if watch {
		go func() {
			if err := provider.Watch(ctx, logger); err != nil {
				logger.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("running server",
			zap.String("addr", s.Addr()),
			zap.String("cms_url", cfg.CMSURL),
			zap.String("token_mode", cfg.CMSTokenMode),
		)
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
