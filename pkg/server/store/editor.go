package store

import (
	"context"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
)

// EditorStore serves the authenticated write paths. Every operation runs
// with the caller-supplied access token and returns ErrMissingToken when it
// is empty.
type EditorStore interface {
	// GetCheatsheet returns any cheatsheet visible to the token, whatever
	// its status.
	GetCheatsheet(ctx context.Context, token, id string) (*model.Cheatsheet, error)

	CreateCheatsheet(ctx context.Context, token string, in model.CheatsheetInput) (*model.Cheatsheet, error)

	// UpdateCheatsheet applies a partial update. Absent fields are unchanged.
	UpdateCheatsheet(ctx context.Context, token, id string, in model.CheatsheetInput) (*model.Cheatsheet, error)

	DeleteCheatsheet(ctx context.Context, token, id string) error

	// ListMyCheatsheets returns the cheatsheets the token's owner may edit,
	// most recently updated first.
	ListMyCheatsheets(ctx context.Context, token string) ([]model.Cheatsheet, error)
}
