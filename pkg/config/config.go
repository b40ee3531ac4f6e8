package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
)

const (
	DefaultConfigPath = "/etc/cheatsheethub"
	ConfigFileName    = "cheatsheethub.yml"
	DefaultEnvFile    = ".env"
)

// Token modes select which CMS credential the editor API forwards.
const (
	TokenModeStatic  = "static"
	TokenModeSession = "session"
)

// Attribute sources.
const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceDotenv      = "dotenv"
	SourceEnvironment = "environment"
)

const maskedValue = "********"

// Config holds all cheatsheethub configuration settings
type Config struct {
	BindAddress string `yaml:"bind_address" json:"bind_address"`
	Port        int    `yaml:"port" json:"port"`

	// CMSURL is the base URL of the headless CMS
	CMSURL string `yaml:"cms_url" json:"cms_url"`

	// CMSStaticToken is the process-wide CMS credential used in static token mode
	CMSStaticToken string `yaml:"cms_static_token" json:"-"`

	CMSTokenMode      string `yaml:"cms_token_mode" json:"cms_token_mode"`
	CMSTimeoutSeconds int    `yaml:"cms_timeout_seconds" json:"cms_timeout_seconds"`

	// SessionSecret signs editor session tokens
	SessionSecret       string `yaml:"session_secret" json:"-"`
	SessionIssuer       string `yaml:"session_issuer" json:"session_issuer"`
	SessionTTLHours     int    `yaml:"session_ttl_hours" json:"session_ttl_hours"`
	SessionCookieName   string `yaml:"session_cookie_name" json:"session_cookie_name"`
	SessionCookieSecure bool   `yaml:"session_cookie_secure" json:"session_cookie_secure"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	// AuditEnabled writes RFC5424 audit lines for editor writes and sign-ins
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	SiteName       string `yaml:"site_name" json:"site_name"`
	HomeLimit      int    `yaml:"home_limit" json:"home_limit"`
	ListLimit      int    `yaml:"list_limit" json:"list_limit"`
	HighlightStyle string `yaml:"highlight_style" json:"highlight_style"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

type attribute struct {
	name   string
	env    []string
	secret bool
	get    func(*Config) string
	set    func(*Config, string) error
}

func stringAttr(name string, field func(*Config) *string, env ...string) attribute {
	return attribute{
		name: name,
		env:  env,
		get:  func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func secretAttr(name string, field func(*Config) *string, env ...string) attribute {
	a := stringAttr(name, field, env...)
	a.secret = true
	return a
}

func intAttr(name string, field func(*Config) *int, env ...string) attribute {
	return attribute{
		name: name,
		env:  env,
		get:  func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s must be an integer, got %q", name, v)
			}
			*field(c) = i
			return nil
		},
	}
}

func boolAttr(name string, field func(*Config) *bool, env ...string) attribute {
	return attribute{
		name: name,
		env:  env,
		get:  func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s must be a boolean, got %q", name, v)
			}
			*field(c) = b
			return nil
		},
	}
}

// attributes lists every setting in display order. The first environment
// variable that is set wins.
var attributes = []attribute{
	stringAttr("bind_address", func(c *Config) *string { return &c.BindAddress }, "BIND_ADDRESS"),
	intAttr("port", func(c *Config) *int { return &c.Port }, "PORT"),
	stringAttr("cms_url", func(c *Config) *string { return &c.CMSURL }, "DIRECTUS_URL", "NEXT_PUBLIC_DIRECTUS_URL"),
	secretAttr("cms_static_token", func(c *Config) *string { return &c.CMSStaticToken }, "DIRECTUS_STATIC_TOKEN"),
	stringAttr("cms_token_mode", func(c *Config) *string { return &c.CMSTokenMode }, "CHEATSHEETHUB_CMS_TOKEN_MODE"),
	intAttr("cms_timeout_seconds", func(c *Config) *int { return &c.CMSTimeoutSeconds }, "CHEATSHEETHUB_CMS_TIMEOUT_SECONDS"),
	secretAttr("session_secret", func(c *Config) *string { return &c.SessionSecret }, "CHEATSHEETHUB_SESSION_SECRET"),
	stringAttr("session_issuer", func(c *Config) *string { return &c.SessionIssuer }, "CHEATSHEETHUB_SESSION_ISSUER"),
	intAttr("session_ttl_hours", func(c *Config) *int { return &c.SessionTTLHours }, "CHEATSHEETHUB_SESSION_TTL_HOURS"),
	stringAttr("session_cookie_name", func(c *Config) *string { return &c.SessionCookieName }, "CHEATSHEETHUB_SESSION_COOKIE_NAME"),
	boolAttr("session_cookie_secure", func(c *Config) *bool { return &c.SessionCookieSecure }, "CHEATSHEETHUB_SESSION_COOKIE_SECURE"),
	stringAttr("log_level", func(c *Config) *string { return &c.LogLevel }, "CHEATSHEETHUB_LOG_LEVEL"),
	stringAttr("log_format", func(c *Config) *string { return &c.LogFormat }, "CHEATSHEETHUB_LOG_FORMAT"),
	boolAttr("audit_enabled", func(c *Config) *bool { return &c.AuditEnabled }, "CHEATSHEETHUB_AUDIT_ENABLED"),
	stringAttr("site_name", func(c *Config) *string { return &c.SiteName }, "CHEATSHEETHUB_SITE_NAME"),
	intAttr("home_limit", func(c *Config) *int { return &c.HomeLimit }, "CHEATSHEETHUB_HOME_LIMIT"),
	intAttr("list_limit", func(c *Config) *int { return &c.ListLimit }, "CHEATSHEETHUB_LIST_LIMIT"),
	stringAttr("highlight_style", func(c *Config) *string { return &c.HighlightStyle }, "CHEATSHEETHUB_HIGHLIGHT_STYLE"),
}

// Default returns a config with default values
func Default() *Config {
	c := &Config{
		BindAddress:       "0.0.0.0",
		Port:              3000,
		CMSURL:            "http://localhost:8055",
		CMSTokenMode:      TokenModeStatic,
		CMSTimeoutSeconds: 15,
		SessionIssuer:     "cheatsheethub",
		SessionTTLHours:   720,
		SessionCookieName: "cheatsheethub_session",
		LogLevel:          "info",
		LogFormat:         "json",
		AuditEnabled:      true,
		SiteName:          "CheatSheet Hub",
		HomeLimit:         20,
		ListLimit:         50,
		HighlightStyle:    markdown.DefaultStyle,
		sources:           make(map[string]string),
	}
	for _, a := range attributes {
		c.sources[a.name] = SourceDefault
	}
	return c
}

// Load loads configuration from the config file, the .env file, and
// environment variables. Environment variables take precedence.
func Load() (*Config, error) {
	config := Default()

	configPath := os.Getenv("CHEATSHEETHUB_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	data, err := os.ReadFile(config.configFilePath)
	switch {
	case err == nil:
		if err := config.applyFileConfig(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file %s: %w", config.configFilePath, err)
	}

	envFile := os.Getenv("CHEATSHEETHUB_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	if err := config.applyEnvConfig(dotenv); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyFileConfig(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, a := range attributes {
		v, ok := raw[a.name]
		if !ok || v == nil {
			continue
		}
		if err := a.set(c, fmt.Sprint(v)); err != nil {
			return err
		}
		c.sources[a.name] = SourceFile
	}
	return nil
}

func (c *Config) applyEnvConfig(dotenv map[string]string) error {
	for _, a := range attributes {
		for _, name := range a.env {
			source := SourceEnvironment
			val, ok := os.LookupEnv(name)
			if !ok {
				val, ok = dotenv[name]
				source = SourceDotenv
			}
			if !ok || val == "" {
				continue
			}
			if err := a.set(c, val); err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			c.sources[a.name] = source
			break
		}
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return SourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.BindAddress + ":" + strconv.Itoa(c.Port)
}

// CMSTimeout returns the per-request CMS timeout
func (c *Config) CMSTimeout() time.Duration {
	return time.Duration(c.CMSTimeoutSeconds) * time.Second
}

// SessionTTL returns the session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.CMSTokenMode {
	case TokenModeStatic, TokenModeSession:
	default:
		return fmt.Errorf("invalid cms_token_mode: %q (expected %q or %q)", c.CMSTokenMode, TokenModeStatic, TokenModeSession)
	}

	u, err := url.Parse(c.CMSURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid cms_url: %q", c.CMSURL)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	for name, v := range map[string]int{
		"cms_timeout_seconds": c.CMSTimeoutSeconds,
		"session_ttl_hours":   c.SessionTTLHours,
		"home_limit":          c.HomeLimit,
		"list_limit":          c.ListLimit,
	} {
		if v <= 0 {
			return fmt.Errorf("invalid %s: %d (must be positive)", name, v)
		}
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log_format: %q", c.LogFormat)
	}

	if !markdown.StyleExists(c.HighlightStyle) {
		return fmt.Errorf("invalid highlight_style: %q", c.HighlightStyle)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. Secret values are masked.
func (c *Config) Attributes() []Attribute {
	out := make([]Attribute, 0, len(attributes))
	for _, a := range attributes {
		value := a.get(c)
		if a.secret && value != "" {
			value = maskedValue
		}
		out = append(out, Attribute{Name: a.name, Value: value, Source: c.Source(a.name)})
	}
	return out
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-32s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-32s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-32s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
