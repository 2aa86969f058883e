package study

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyairhashvil/studybuddy/internal/notes"
)

func seedNotes(t *testing.T, svc *Service) {
	t.Helper()
	fixtures := []struct {
		kind                    notes.Kind
		subject, topic, content string
	}{
		{notes.Flashcards, "Biology", "Cells", "Q: What is mitosis?\nA: Cell division."},
		{notes.Flashcards, "Biology", "Genes", "Q: What is DNA?"},
		{notes.Quizzes, "Biology", "Cells", "1. Describe mitosis."},
		{notes.Quizzes, "World History", "Rome", "1. Who was Caesar?"},
	}
	for _, f := range fixtures {
		store, err := svc.Store(f.kind)
		require.NoError(t, err)
		_, err = store.Write(f.subject, f.topic, f.content)
		require.NoError(t, err)
	}
}

func TestSearchText(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedNotes(t, svc)

	got, err := svc.Search("mitosis")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, notes.Flashcards, got[0].Kind)
	assert.Equal(t, "Q: What is mitosis?", got[0].Snippet)
	assert.Equal(t, notes.Quizzes, got[1].Kind)
}

func TestSearchFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedNotes(t, svc)

	got, err := svc.Search("kind:quiz")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.Search(`subject:"world history"`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rome", got[0].Topic)

	got, err = svc.Search("kind:flashcards genes")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Q: What is DNA?", got[0].Snippet)

	got, err = svc.Search("kind:essays")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnippetShortensLongLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := snippet("\n\n"+long, nil)
	assert.Len(t, got, snippetLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}
