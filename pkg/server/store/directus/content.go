package directus

import (
	"context"
	"fmt"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// ContentStore reads published content anonymously.
type ContentStore struct {
	client *cms.Client
}

// NewContentStore creates a new ContentStore
func NewContentStore(client *cms.Client) *ContentStore {
	return &ContentStore{client: client}
}

var _ store.ContentStore = (*ContentStore)(nil)

func listQuery(opts store.ListOptions) cms.Query {
	status := model.StatusPublished
	if opts.Status != nil {
		status = *opts.Status
	}

	filter := cms.Where("status", cms.Eq(status.String()))
	if opts.Category != "" {
		filter.Where("category.slug", cms.Eq(opts.Category))
	}
	if opts.Tag != "" {
		filter.Where("tags.tags_id.slug", cms.Eq(opts.Tag))
	}
	if opts.Search != "" {
		filter.Or(
			cms.Where("title", cms.IContains(opts.Search)),
			cms.Where("body", cms.IContains(opts.Search)),
			cms.Where("summary", cms.IContains(opts.Search)),
		)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = store.DefaultListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	return cms.Query{
		Fields: listFields,
		Filter: filter,
		Sort:   []string{"-date_created"},
		Limit:  limit,
		Offset: offset,
	}
}

func (s *ContentStore) ListCheatsheets(ctx context.Context, opts store.ListOptions) ([]model.Cheatsheet, error) {
	sheets, err := cms.ReadItems[model.Cheatsheet](ctx, s.client, collectionCheatsheets, listQuery(opts))
	if err != nil {
		return nil, readError("list cheatsheets", err)
	}
	return sheets, nil
}

func (s *ContentStore) GetCheatsheetBySlug(ctx context.Context, slug string) (*model.Cheatsheet, error) {
	sheets, err := cms.ReadItems[model.Cheatsheet](ctx, s.client, collectionCheatsheets, cms.Query{
		Fields: detailFields,
		Filter: cms.Where("slug", cms.Eq(slug)).
			Where("status", cms.Eq(model.StatusPublished.String())),
		Limit: 1,
	})
	if err != nil {
		return nil, readError("get cheatsheet", err)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("cheatsheet %q: %w", slug, store.ErrNotFound)
	}
	return &sheets[0], nil
}

func (s *ContentStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := cms.ReadItems[model.Category](ctx, s.client, collectionCategories, cms.Query{
		Fields: categoryListFields,
		Sort:   []string{"sort", "name"},
		Limit:  cms.All,
	})
	if err != nil {
		return nil, readError("list categories", err)
	}
	return categories, nil
}

func (s *ContentStore) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	categories, err := cms.ReadItems[model.Category](ctx, s.client, collectionCategories, cms.Query{
		Fields: categoryDetailFields,
		Filter: cms.Where("slug", cms.Eq(slug)),
		Limit:  1,
	})
	if err != nil {
		return nil, readError("get category", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("category %q: %w", slug, store.ErrNotFound)
	}
	return &categories[0], nil
}

func (s *ContentStore) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := cms.ReadItems[model.Tag](ctx, s.client, collectionTags, cms.Query{
		Fields: tagFields,
		Sort:   []string{"name"},
		Limit:  cms.All,
	})
	if err != nil {
		return nil, readError("list tags", err)
	}
	return tags, nil
}

func (s *ContentStore) GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	tags, err := cms.ReadItems[model.Tag](ctx, s.client, collectionTags, cms.Query{
		Fields: tagFields,
		Filter: cms.Where("slug", cms.Eq(slug)),
		Limit:  1,
	})
	if err != nil {
		return nil, readError("get tag", err)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("tag %q: %w", slug, store.ErrNotFound)
	}
	return &tags[0], nil
}
