// Package config provides configuration management for cheatsheethub.
//
// This package handles loading and validating server configuration from
// built-in defaults, a YAML file, a .env file, and environment variables.
//
// # Configuration Sources
//
// Later sources override earlier ones:
//
//   - Defaults
//   - $CHEATSHEETHUB_CONFIG_PATH/cheatsheethub.yml (default /etc/cheatsheethub)
//   - .env in the working directory ($CHEATSHEETHUB_ENV_FILE), for variables
//     not set in the process environment
//   - Environment variables
//
// Every attribute records the source of its value.
//
// # Key Configuration Options
//
//   - DIRECTUS_URL: CMS base URL
//   - DIRECTUS_STATIC_TOKEN: Server-held CMS access token
//   - CHEATSHEETHUB_CMS_TOKEN_MODE: "static" or "session"
//   - CHEATSHEETHUB_SESSION_SECRET: Session signing secret
//   - PORT: Server listen port
package config
