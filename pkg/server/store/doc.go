// Package store provides storage abstractions for the cheatsheethub server.
//
// This package defines interfaces for content operations, allowing the
// server endpoints to be decoupled from the specific CMS binding. This
// enables testing with mocks.
//
// # Available Stores
//
//   - ContentStore: public, published-only reads (cheatsheets, categories, tags)
//   - EditorStore: token-bound writes and the caller's own cheatsheets
//   - HealthStore: backend reachability
//
// # Errors
//
// Every read returns a value and an error. Collections are never nil on
// success. Callers branch with errors.Is:
//
//	sheet, err := contents.GetCheatsheetBySlug(ctx, slug)
//	switch {
//	case errors.Is(err, store.ErrNotFound):
//	    // render the not-found page
//	case errors.Is(err, store.ErrUnavailable):
//	    // backend unreachable or failing
//	}
package store
