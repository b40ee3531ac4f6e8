package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheatsheetInputPartialUpdate(t *testing.T) {
	in := CheatsheetInput{
		Status:   Set(StatusPublished),
		Category: Null[string](),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"published","category":null}`, string(data))
}

func TestCheatsheetInputDecode(t *testing.T) {
	var in CheatsheetInput
	err := json.Unmarshal([]byte(`{"title":"Git Basics","slug":"git-basics","status":"draft","difficulty":null}`), &in)
	require.NoError(t, err)

	title, ok := in.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "Git Basics", title)

	status, ok := in.Status.Get()
	assert.True(t, ok)
	assert.Equal(t, StatusDraft, status)

	assert.True(t, in.Difficulty.IsNull())
	assert.True(t, in.Summary.IsZero())

	_, ok = in.Difficulty.Get()
	assert.False(t, ok)
}

func TestCheatsheetInputRejectsUnknownStatus(t *testing.T) {
	var in CheatsheetInput
	err := json.Unmarshal([]byte(`{"status":"deleted"}`), &in)
	assert.Error(t, err)
}
