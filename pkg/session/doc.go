// Package session issues and verifies editor sessions.
//
// A session is an HS256-signed JWT carried in a cookie (browsers) or an
// Authorization bearer header (API clients). The token names the signed-in
// user and may carry the user's own CMS access token in the cms_token claim.
//
// Sign-in itself belongs to an external identity provider, which mints
// tokens with the shared secret; the cheatsheethub CLI can mint one for
// development with "cheatsheethub session issue".
package session
