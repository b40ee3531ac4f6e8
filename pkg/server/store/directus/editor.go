package directus

import (
	"context"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// EditorStore runs editor operations with a caller-supplied token. Ownership
// is enforced by the CMS permissions attached to that token.
type EditorStore struct {
	client *cms.Client
}

// NewEditorStore creates a new EditorStore
func NewEditorStore(client *cms.Client) *EditorStore {
	return &EditorStore{client: client}
}

var _ store.EditorStore = (*EditorStore)(nil)

func (s *EditorStore) bind(token string) (*cms.Client, error) {
	if token == "" {
		return nil, store.ErrMissingToken
	}
	return s.client.WithToken(token), nil
}

func (s *EditorStore) GetCheatsheet(ctx context.Context, token, id string) (*model.Cheatsheet, error) {
	client, err := s.bind(token)
	if err != nil {
		return nil, err
	}
	sheet, err := cms.ReadItem[model.Cheatsheet](ctx, client, collectionCheatsheets, id, cms.Query{Fields: editorFields})
	if err != nil {
		return nil, writeError("get cheatsheet "+id, err, true)
	}
	return &sheet, nil
}

func (s *EditorStore) CreateCheatsheet(ctx context.Context, token string, in model.CheatsheetInput) (*model.Cheatsheet, error) {
	client, err := s.bind(token)
	if err != nil {
		return nil, err
	}
	sheet, err := cms.CreateItem[model.Cheatsheet](ctx, client, collectionCheatsheets, in, cms.Query{Fields: editorFields})
	if err != nil {
		return nil, writeError("create cheatsheet", err, false)
	}
	return &sheet, nil
}

func (s *EditorStore) UpdateCheatsheet(ctx context.Context, token, id string, in model.CheatsheetInput) (*model.Cheatsheet, error) {
	client, err := s.bind(token)
	if err != nil {
		return nil, err
	}
	sheet, err := cms.UpdateItem[model.Cheatsheet](ctx, client, collectionCheatsheets, id, in, cms.Query{Fields: editorFields})
	if err != nil {
		return nil, writeError("update cheatsheet "+id, err, true)
	}
	return &sheet, nil
}

func (s *EditorStore) DeleteCheatsheet(ctx context.Context, token, id string) error {
	client, err := s.bind(token)
	if err != nil {
		return err
	}
	if err := cms.DeleteItem(ctx, client, collectionCheatsheets, id); err != nil {
		return writeError("delete cheatsheet "+id, err, true)
	}
	return nil
}

func (s *EditorStore) ListMyCheatsheets(ctx context.Context, token string) ([]model.Cheatsheet, error) {
	client, err := s.bind(token)
	if err != nil {
		return nil, err
	}
	sheets, err := cms.ReadItems[model.Cheatsheet](ctx, client, collectionCheatsheets, cms.Query{
		Fields: myFields,
		Sort:   []string{"-date_updated"},
		Limit:  cms.All,
	})
	if err != nil {
		return nil, writeError("list my cheatsheets", err, false)
	}
	return sheets, nil
}
