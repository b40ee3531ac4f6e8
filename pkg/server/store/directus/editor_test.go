package directus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

const token = "static-token"

func TestEditorRequiresToken(t *testing.T) {
	srv, _, editor := newStores(t)
	srv.ResetHits()
	ctx := context.Background()

	_, err := editor.CreateCheatsheet(ctx, "", model.CheatsheetInput{})
	assert.ErrorIs(t, err, store.ErrMissingToken)
	_, err = editor.UpdateCheatsheet(ctx, "", "id", model.CheatsheetInput{})
	assert.ErrorIs(t, err, store.ErrMissingToken)
	assert.ErrorIs(t, editor.DeleteCheatsheet(ctx, "", "id"), store.ErrMissingToken)
	_, err = editor.ListMyCheatsheets(ctx, "")
	assert.ErrorIs(t, err, store.ErrMissingToken)
	_, err = editor.GetCheatsheet(ctx, "", "id")
	assert.ErrorIs(t, err, store.ErrMissingToken)

	assert.Zero(t, srv.Hits())
}

func TestCreateThenListMine(t *testing.T) {
	_, _, editor := newStores(t)
	ctx := context.Background()

	created, err := editor.CreateCheatsheet(ctx, token, model.CheatsheetInput{
		Title:  model.Set("Git Basics"),
		Slug:   model.Set("git-basics"),
		Status: model.Set(model.StatusDraft),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	mine, err := editor.ListMyCheatsheets(ctx, token)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.NotEmpty(t, mine[0].ID)
	assert.Equal(t, "Git Basics", mine[0].Title)
	assert.Equal(t, "git-basics", mine[0].Slug)
	assert.Equal(t, model.StatusDraft, mine[0].Status)
}

func TestPublishMakesVisible(t *testing.T) {
	_, contents, editor := newStores(t)
	ctx := context.Background()

	created, err := editor.CreateCheatsheet(ctx, token, model.CheatsheetInput{
		Title:  model.Set("Git Basics"),
		Slug:   model.Set("git-basics"),
		Status: model.Set(model.StatusDraft),
	})
	require.NoError(t, err)

	_, err = contents.GetCheatsheetBySlug(ctx, "git-basics")
	require.ErrorIs(t, err, store.ErrNotFound)

	updated, err := editor.UpdateCheatsheet(ctx, token, created.ID, model.CheatsheetInput{
		Status: model.Set(model.StatusPublished),
	})
	require.NoError(t, err)
	assert.Equal(t, "Git Basics", updated.Title)

	listed, err := contents.ListCheatsheets(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"git-basics"}, slugs(listed))

	sheet, err := contents.GetCheatsheetBySlug(ctx, "git-basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, sheet.ID)
}

func TestDeleteRemovesFromPublicReads(t *testing.T) {
	srv, contents, editor := newStores(t)
	sheet := srv.AddCheatsheet(model.Cheatsheet{Slug: "gone", Title: "Gone", Status: model.StatusPublished})
	ctx := context.Background()

	require.NoError(t, editor.DeleteCheatsheet(ctx, token, sheet.ID))

	_, err := contents.GetCheatsheetBySlug(ctx, "gone")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = editor.DeleteCheatsheet(ctx, token, sheet.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetCheatsheetAnyStatus(t *testing.T) {
	srv, _, editor := newStores(t)
	vcs := srv.AddCategory(model.Category{Name: "VCS", Slug: "vcs"})
	sheet := srv.AddCheatsheet(model.Cheatsheet{Slug: "wip", Title: "WIP", Status: model.StatusDraft, Category: model.RefTo[model.Category](vcs.ID)})
	ctx := context.Background()

	got, err := editor.GetCheatsheet(ctx, token, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, got.Status)
	category, ok := got.CategoryItem()
	require.True(t, ok)
	assert.Equal(t, "vcs", category.Slug)

	_, err = editor.GetCheatsheet(ctx, token, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWriteErrorsAreClassified(t *testing.T) {
	srv, _, editor := newStores(t)
	srv.AddCheatsheet(model.Cheatsheet{Slug: "taken", Title: "Taken"})
	ctx := context.Background()

	_, err := editor.CreateCheatsheet(ctx, token, model.CheatsheetInput{Title: model.Set("Dup"), Slug: model.Set("taken")})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = editor.CreateCheatsheet(ctx, "unknown-token", model.CheatsheetInput{Title: model.Set("X"), Slug: model.Set("x")})
	assert.ErrorIs(t, err, store.ErrForbidden)

	srv.SetDown(true)
	_, err = editor.ListMyCheatsheets(ctx, token)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestSessionTokensSeeOnlyOwnCheatsheets(t *testing.T) {
	srv, _, editor := newStores(t)
	srv.AddUser(cmstestUser("alice"))
	srv.AddUser(cmstestUser("bob"))
	ctx := context.Background()

	_, err := editor.CreateCheatsheet(ctx, "alice-token", model.CheatsheetInput{Title: model.Set("A"), Slug: model.Set("a")})
	require.NoError(t, err)
	_, err = editor.CreateCheatsheet(ctx, "bob-token", model.CheatsheetInput{Title: model.Set("B"), Slug: model.Set("b")})
	require.NoError(t, err)

	mine, err := editor.ListMyCheatsheets(ctx, "alice-token")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(mine))

	all, err := editor.ListMyCheatsheets(ctx, token)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
