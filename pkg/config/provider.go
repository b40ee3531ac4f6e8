package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Provider holds the current configuration and swaps it on reload.
type Provider struct {
	mu   sync.RWMutex
	cfg  *Config
	load func() (*Config, error)
}

// NewProvider returns a provider serving cfg. Reload uses Load.
func NewProvider(cfg *Config) *Provider {
	return &Provider{cfg: cfg, load: Load}
}

// Get returns the current configuration. Callers must not modify it.
func (p *Provider) Get() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// StaticToken returns the current server-held CMS token.
func (p *Provider) StaticToken() string {
	return p.Get().CMSStaticToken
}

// liveAttributes are read on every request. All other attributes are
// consumed once when the server is built (listener, CMS client, session
// manager, renderer, logger).
var liveAttributes = map[string]bool{
	"cms_static_token": true,
	"cms_token_mode":   true,
	"site_name":        true,
	"home_limit":       true,
	"list_limit":       true,
}

// Reload loads and validates the configuration and makes it current. On
// failure the previous configuration stays in place.
//
// Only live attributes take effect. Startup attributes keep their current
// value and source, and the names of those whose loaded value differed are
// returned so the caller can report that a restart is needed.
func (p *Provider) Reload() (restartRequired []string, err error) {
	cfg, err := p.load()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.cfg
	for _, a := range attributes {
		if liveAttributes[a.name] {
			continue
		}
		value := a.get(current)
		if a.get(cfg) == value {
			continue
		}
		restartRequired = append(restartRequired, a.name)
		if err := a.set(cfg, value); err != nil {
			return nil, err
		}
		cfg.sources[a.name] = current.Source(a.name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p.cfg = cfg
	return restartRequired, nil
}

// Watch reloads the configuration whenever the config file is written or
// created, until ctx is done. The containing directory is watched so that
// atomic replacements are seen. Changes to startup attributes are logged
// and ignored until restart.
func (p *Provider) Watch(ctx context.Context, logger *zap.Logger) error {
	path := p.Get().ConfigFilePath()
	if path == "" {
		return fmt.Errorf("no config file path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("watching config file", zap.String("path", path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				restartRequired, err := p.Reload()
				if err != nil {
					logger.Error("config reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				if len(restartRequired) > 0 {
					logger.Warn("config changes need a restart to take effect",
						zap.String("path", path), zap.Strings("attributes", restartRequired))
				}
				logger.Info("config reloaded", zap.String("path", path))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}
