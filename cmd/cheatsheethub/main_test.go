package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"
	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store/directus"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

func seededStore(t *testing.T) *directus.ContentStore {
	t.Helper()
	srv := cmstest.New()
	t.Cleanup(srv.Close)

	vcs := srv.AddCategory(model.Category{Name: "Version Control", Slug: "vcs"})
	git := srv.AddTag(model.Tag{Name: "git", Slug: "git", Color: "#f05032"})
	beginner := model.DifficultyBeginner
	basics := srv.AddCheatsheet(model.Cheatsheet{
		Slug:          "git-basics",
		Title:         "Git Basics",
		Summary:       "Everyday git commands",
		Body:          "## Status\n\nRun `git status`.",
		Status:        model.StatusPublished,
		Category:      model.RefTo[model.Category](vcs.ID),
		TargetName:    "Git",
		TargetVersion: "2.45",
		Difficulty:    &beginner,
		References:    []model.Reference{{Title: "Pro Git", URL: "https://git-scm.com/book"}},
	}, git.ID)
	rebase := srv.AddCheatsheet(model.Cheatsheet{Slug: "git-rebase", Title: "Git Rebase", Status: model.StatusPublished})
	srv.AddCheatsheet(model.Cheatsheet{Slug: "draft", Title: "Secret Draft", Status: model.StatusDraft})
	srv.Relate(basics.ID, rebase.ID)

	client, err := cms.New(srv.URL)
	require.NoError(t, err)
	return directus.NewContentStore(client)
}

func TestListCheatsheets(t *testing.T) {
	contents := seededStore(t)

	var out bytes.Buffer
	require.NoError(t, listCheatsheets(context.Background(), &out, contents, store.ListOptions{Limit: 10}))

	text := out.String()
	assert.Contains(t, text, "Git Basics")
	assert.Contains(t, text, "(git-basics)")
	assert.Contains(t, text, "Everyday git commands")
	assert.Contains(t, text, "Version Control")
	assert.Contains(t, text, "Beginner")
	assert.Contains(t, text, "#git")
	assert.Contains(t, text, "Git Rebase")
	assert.NotContains(t, text, "Secret Draft")
}

func TestListCheatsheetsEmpty(t *testing.T) {
	contents := seededStore(t)

	var out bytes.Buffer
	require.NoError(t, listCheatsheets(context.Background(), &out, contents, store.ListOptions{Search: "kubernetes"}))

	assert.Equal(t, "No cheatsheets found.", strings.TrimSpace(out.String()))
}

func TestShowCheatsheet(t *testing.T) {
	contents := seededStore(t)

	t.Run("published", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, showCheatsheet(context.Background(), &out, contents, "git-basics"))

		text := out.String()
		assert.Contains(t, text, "Git Basics")
		assert.Contains(t, text, "git status")
		assert.Contains(t, text, "Pro Git")
		assert.Contains(t, text, "Git Rebase")
	})

	t.Run("draft is not found", func(t *testing.T) {
		var out bytes.Buffer
		err := showCheatsheet(context.Background(), &out, contents, "draft")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Empty(t, out.String())
	})
}

func TestCheatsheetDocument(t *testing.T) {
	beginner := model.DifficultyBeginner
	sheet := &model.Cheatsheet{
		Title:         "Git Basics",
		Summary:       "Everyday git commands",
		Category:      model.Expanded(model.Category{ID: "c1", Name: "Version Control"}),
		TargetName:    "Git",
		TargetVersion: "2.45",
		Difficulty:    &beginner,
		References:    []model.Reference{{URL: "https://git-scm.com"}},
		DateCreated:   time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	doc := cheatsheetDocument(sheet)

	assert.True(t, strings.HasPrefix(doc, "# Git Basics\n\n> Everyday git commands\n\n"))
	assert.Contains(t, doc, "**Category:** Version Control")
	assert.Contains(t, doc, "**Difficulty:** Beginner")
	assert.Contains(t, doc, "**Target:** Git 2.45")
	assert.Contains(t, doc, "**Published:** 2024-03-09")
	assert.Contains(t, doc, "_No content available._")
	assert.Contains(t, doc, "- [https://git-scm.com](https://git-scm.com)")
	assert.NotContains(t, doc, "Related Cheatsheets")
}

func TestRenderHTML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderHTML(&out, []byte("# Title\n\n```go\nfmt.Println(1)\n```\n"), "github-dark"))

	assert.Contains(t, out.String(), `class="md-h1"`)
	assert.Contains(t, out.String(), `class="chroma"`)

	err := renderHTML(&out, []byte("x"), "no-such-style")
	assert.Error(t, err)
}

func TestRenderTerminal(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderTerminal(&out, "# Title\n\nSome **bold** text."))

	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "bold")
}

func TestIssueSession(t *testing.T) {
	cfg := config.Default()
	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"

	var out bytes.Buffer
	err := issueSession(&out, cfg, issueRequest{UserID: "u1", Name: "Ada", CMSToken: "cms-token", TTL: time.Hour})
	require.NoError(t, err)

	sessions, err := session.NewManager(session.Config{Secret: []byte(cfg.SessionSecret), Issuer: cfg.SessionIssuer})
	require.NoError(t, err)
	sess, err := sessions.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "Ada", sess.Name)
	assert.Equal(t, "cms-token", sess.CMSToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
}

func TestIssueSessionRequiresSecret(t *testing.T) {
	var out bytes.Buffer
	err := issueSession(&out, config.Default(), issueRequest{UserID: "u1"})
	assert.ErrorContains(t, err, "CHEATSHEETHUB_SESSION_SECRET")
	assert.Empty(t, out.String())
}

func TestWriteConfigurationText(t *testing.T) {
	cfg := config.Default()
	cfg.CMSStaticToken = "super-secret"

	var out bytes.Buffer
	writeConfigurationText(&out, cfg)

	text := out.String()
	assert.Contains(t, text, "Config file: (none)")
	assert.Contains(t, text, "cms_url")
	assert.Contains(t, text, "http://localhost:8055")
	assert.NotContains(t, text, "super-secret")
	assert.Contains(t, text, "session_secret")
	assert.Contains(t, text, "(not set)")
}
