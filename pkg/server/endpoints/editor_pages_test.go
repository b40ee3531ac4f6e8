package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

func TestEditorPagesRedirectWithoutSession(t *testing.T) {
	for _, path := range []string{"/editor", "/editor/new", "/editor/cs-1"} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(t, "GET", path, "", "")

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.Empty(t, env.editor.Calls)
			assert.Empty(t, env.content.Calls)
		})
	}
}

func TestEditorList(t *testing.T) {
	env := newTestEnv(t)
	draft := sampleCheatsheet()
	draft.ID, draft.Slug, draft.Status = "cs-2", "draft-one", model.StatusDraft
	env.editor.On("ListMyCheatsheets", mock.Anything, testStaticToken).
		Return([]model.Cheatsheet{sampleCheatsheet(), draft}, nil)

	w := env.do(t, "GET", "/editor", "", env.sessionToken(t, "u1", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "My Cheatsheets")
	assert.Contains(t, body, `class="badge status-published"`)
	assert.Contains(t, body, `class="badge status-draft"`)
	assert.Contains(t, body, `href="/editor/cs-2"`)
	assert.Contains(t, body, `href="/cheatsheets/git-basics"`)
	assert.NotContains(t, body, `href="/cheatsheets/draft-one"`)
}

func TestEditorListEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.editor.On("ListMyCheatsheets", mock.Anything, testStaticToken).Return([]model.Cheatsheet{}, nil)

	w := env.do(t, "GET", "/editor", "", env.sessionToken(t, "u1", ""))

	assert.Contains(t, w.Body.String(), "Create Your First Cheatsheet")
}

func TestEditorNew(t *testing.T) {
	env := newTestEnv(t)
	env.withSidebar()

	w := env.do(t, "GET", "/editor/new", "", env.sessionToken(t, "u1", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Create New Cheatsheet")
	assert.Contains(t, body, `<option value="cat-1">Version Control</option>`)
	assert.Contains(t, body, `data-action="published"`)
	assert.NotContains(t, body, `data-action="delete"`)
	assert.Contains(t, body, `src="/static/editor.js"`)
}

func TestEditorEdit(t *testing.T) {
	t.Run("prefills the form", func(t *testing.T) {
		env := newTestEnv(t)
		env.withSidebar()
		sheet := sampleCheatsheet()
		env.editor.On("GetCheatsheet", mock.Anything, testStaticToken, "cs-1").Return(&sheet, nil)

		w := env.do(t, "GET", "/editor/cs-1", "", env.sessionToken(t, "u1", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `data-id="cs-1"`)
		assert.Contains(t, body, `value="Git Basics"`)
		assert.Contains(t, body, `<option value="cat-1" selected>`)
		assert.Contains(t, body, `<option value="beginner" selected>`)
		assert.Contains(t, body, `value="tag-a" checked`)
		assert.Contains(t, body, `data-action="delete"`)
		assert.Contains(t, body, "View Live")
	})

	t.Run("unknown id returns to the list", func(t *testing.T) {
		env := newTestEnv(t)
		env.withSidebar()
		env.editor.On("GetCheatsheet", mock.Anything, testStaticToken, "gone").Return(nil, store.ErrNotFound)

		w := env.do(t, "GET", "/editor/gone", "", env.sessionToken(t, "u1", ""))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/editor", w.Header().Get("Location"))
	})
}
