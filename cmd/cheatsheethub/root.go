package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/logging"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store/directus"
)

var rootCmd = &cobra.Command{
	Use:   "cheatsheethub",
	Short: "CheatSheet Hub server and content tools",
	Long: `CheatSheet Hub serves Markdown cheatsheets stored in a Directus CMS.

Configuration is read from /etc/cheatsheethub/cheatsheethub.yml (or
CHEATSHEETHUB_CONFIG_PATH), a .env file, and the environment.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

func newCMSClient(cfg *config.Config) (*cms.Client, error) {
	return cms.New(cfg.CMSURL, cms.WithTimeout(cfg.CMSTimeout()))
}

// newContentStore builds the anonymous read store used by the terminal
// commands.
func newContentStore() (*directus.ContentStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := newCMSClient(cfg)
	if err != nil {
		return nil, err
	}
	return directus.NewContentStore(client), nil
}
