package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	t.Run("renders markdown", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, "POST", "/api/preview", `{"markdown":"## Branches\n\nRun `+"`git branch`"+`."}`, env.sessionToken(t, "u1", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var got PreviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Contains(t, got.HTML, `class="md-h2"`)
		assert.Contains(t, got.HTML, `<code class="md-code">git branch</code>`)
	})

	t.Run("empty markdown", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, "POST", "/api/preview", `{"markdown":""}`, env.sessionToken(t, "u1", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"html":""}`, w.Body.String())
	})

	t.Run("invalid body", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, "POST", "/api/preview", `{"markdown":`, env.sessionToken(t, "u1", ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires a session", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, "POST", "/api/preview", `{"markdown":"# x"}`, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
