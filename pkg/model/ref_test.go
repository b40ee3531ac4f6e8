package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefUnmarshal(t *testing.T) {
	t.Run("string is a reference", func(t *testing.T) {
		var r Ref[Category]
		require.NoError(t, json.Unmarshal([]byte(`"cat-1"`), &r))

		assert.False(t, r.IsZero())
		assert.False(t, r.IsExpanded())
		assert.Equal(t, "cat-1", r.ID())
		_, ok := r.Item()
		assert.False(t, ok)
	})

	t.Run("object is an expansion", func(t *testing.T) {
		var r Ref[Category]
		require.NoError(t, json.Unmarshal([]byte(`{"id":"cat-1","name":"Git","slug":"git","icon":"🐙"}`), &r))

		assert.True(t, r.IsExpanded())
		assert.Equal(t, "cat-1", r.ID())
		c, ok := r.Item()
		require.True(t, ok)
		assert.Equal(t, "Git", c.Name)
		assert.Equal(t, "🐙", c.Icon)
	})

	t.Run("number is a reference to a join row", func(t *testing.T) {
		var r Ref[CheatsheetTag]
		require.NoError(t, json.Unmarshal([]byte(`42`), &r))
		assert.Equal(t, "42", r.ID())
		assert.False(t, r.IsExpanded())
	})

	t.Run("null is absent", func(t *testing.T) {
		r := RefTo[Category]("stale")
		require.NoError(t, json.Unmarshal([]byte(`null`), &r))
		assert.True(t, r.IsZero())
	})

	t.Run("unsupported value", func(t *testing.T) {
		var r Ref[Category]
		assert.Error(t, json.Unmarshal([]byte(`true`), &r))
	})
}

func TestRefMarshal(t *testing.T) {
	tests := []struct {
		name     string
		ref      Ref[Tag]
		expected string
	}{
		{name: "zero", ref: Ref[Tag]{}, expected: `null`},
		{name: "reference", ref: RefTo[Tag]("t1"), expected: `"t1"`},
		{name: "expanded", ref: Expanded(Tag{ID: "t1", Name: "go", Slug: "go"}), expected: `{"id":"t1","name":"go","slug":"go"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestCheatsheetNestedRelations(t *testing.T) {
	payload := `{
		"id": "cs-1",
		"slug": "git-basics",
		"title": "Git Basics",
		"status": "published",
		"category": {"id": "c1", "name": "VCS", "slug": "vcs"},
		"tags": [
			{"tags_id": {"id": "t1", "name": "git", "slug": "git", "color": "#f05032"}},
			{"tags_id": "t2"},
			7
		],
		"related_cheatsheets": [
			{"related_cheatsheets_id": {"id": "cs-2", "slug": "git-rebase", "title": "Git Rebase", "difficulty": "advanced"}}
		],
		"difficulty": null,
		"summary": null,
		"date_created": "2024-05-01T10:00:00.000Z"
	}`

	var sheet Cheatsheet
	require.NoError(t, json.Unmarshal([]byte(payload), &sheet))

	assert.Equal(t, StatusPublished, sheet.Status)
	assert.Nil(t, sheet.Difficulty)
	assert.Empty(t, sheet.Summary)

	category, ok := sheet.CategoryItem()
	require.True(t, ok)
	assert.Equal(t, "vcs", category.Slug)

	tags := sheet.TagItems()
	require.Len(t, tags, 1)
	assert.Equal(t, "git", tags[0].Slug)
	assert.Len(t, sheet.Tags, 3)
	assert.Equal(t, "7", sheet.Tags[2].ID())

	related := sheet.RelatedItems()
	require.Len(t, related, 1)
	assert.Equal(t, "git-rebase", related[0].Slug)
	require.NotNil(t, related[0].Difficulty)
	assert.Equal(t, DifficultyAdvanced, *related[0].Difficulty)
}
