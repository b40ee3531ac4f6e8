// Command cheatsheethub runs the CheatSheet Hub site and provides tools
// for working with its content.
//
// CheatSheet Hub serves Markdown cheatsheets stored in a Directus CMS.
// Visitors browse published cheatsheets by category, tag, or search.
// Signed-in editors create and maintain their own cheatsheets through
// the editor pages and the JSON API.
//
// # Quick Start
//
//	# Start the server against a local Directus instance
//	export DIRECTUS_URL=http://localhost:8055
//	export DIRECTUS_STATIC_TOKEN=...
//	export CHEATSHEETHUB_SESSION_SECRET=$(openssl rand -hex 32)
//	cheatsheethub serve
//
//	# Mint a development session and sign in through the callback
//	cheatsheethub session issue --user 1f6a... --name "Ada"
//	open "http://localhost:3000/auth/callback?token=<token>"
//
//	# Inspect content from the terminal
//	cheatsheethub list --category git
//	cheatsheethub show git-basics
//
// # Environment Variables
//
//   - DIRECTUS_URL: CMS base URL (default: http://localhost:8055)
//   - DIRECTUS_STATIC_TOKEN: token used for editor operations in static mode
//   - CHEATSHEETHUB_CMS_TOKEN_MODE: static or session
//   - CHEATSHEETHUB_SESSION_SECRET: HMAC secret for session tokens
//   - CHEATSHEETHUB_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 3000)
//
// Run "cheatsheethub configuration show" for the full list.
package main
