package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// MockContentStore implements store.ContentStore for testing using testify/mock
type MockContentStore struct {
	mock.Mock
}

func NewMockContentStore() *MockContentStore {
	return &MockContentStore{}
}

func (m *MockContentStore) ListCheatsheets(ctx context.Context, opts store.ListOptions) ([]model.Cheatsheet, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cheatsheet), args.Error(1)
}

func (m *MockContentStore) GetCheatsheetBySlug(ctx context.Context, slug string) (*model.Cheatsheet, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cheatsheet), args.Error(1)
}

func (m *MockContentStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockContentStore) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockContentStore) ListTags(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockContentStore) GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

// MockEditorStore implements store.EditorStore for testing using testify/mock
type MockEditorStore struct {
	mock.Mock
}

func NewMockEditorStore() *MockEditorStore {
	return &MockEditorStore{}
}

func (m *MockEditorStore) GetCheatsheet(ctx context.Context, token, id string) (*model.Cheatsheet, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cheatsheet), args.Error(1)
}

func (m *MockEditorStore) CreateCheatsheet(ctx context.Context, token string, in model.CheatsheetInput) (*model.Cheatsheet, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cheatsheet), args.Error(1)
}

func (m *MockEditorStore) UpdateCheatsheet(ctx context.Context, token, id string, in model.CheatsheetInput) (*model.Cheatsheet, error) {
	args := m.Called(ctx, token, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cheatsheet), args.Error(1)
}

func (m *MockEditorStore) DeleteCheatsheet(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockEditorStore) ListMyCheatsheets(ctx context.Context, token string) ([]model.Cheatsheet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cheatsheet), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
