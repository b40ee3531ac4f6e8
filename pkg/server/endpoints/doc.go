// Package endpoints registers the cheatsheethub routes: the JSON API under
// /api, the server-rendered pages, the editor, sign-in callbacks, health
// probes, and embedded static assets.
//
// Protected API routes resolve the caller's session before anything else
// and answer 401 without touching the CMS when there is none. Store errors
// map to HTTP statuses in one place, respondWithStoreError.
package endpoints
