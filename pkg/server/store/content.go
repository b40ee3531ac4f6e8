package store

import (
	"context"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
)

// DefaultListLimit is the page size used when ListOptions.Limit is zero.
const DefaultListLimit = 20

// ListOptions narrows a cheatsheet listing.
type ListOptions struct {
	// Status defaults to published when nil.
	Status   *model.Status
	Category string
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// ContentStore serves the public read paths. Unless ListOptions.Status says
// otherwise, only published cheatsheets are returned.
type ContentStore interface {
	// ListCheatsheets returns cheatsheets newest first.
	ListCheatsheets(ctx context.Context, opts ListOptions) ([]model.Cheatsheet, error)

	// GetCheatsheetBySlug returns a published cheatsheet with its category,
	// tags, and related cheatsheets expanded.
	// Returns ErrNotFound for unknown, draft, and archived slugs.
	GetCheatsheetBySlug(ctx context.Context, slug string) (*model.Cheatsheet, error)

	// ListCategories returns all categories by sort weight, then name.
	ListCategories(ctx context.Context) ([]model.Category, error)

	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)

	// ListTags returns all tags by name.
	ListTags(ctx context.Context) ([]model.Tag, error)

	GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error)
}
