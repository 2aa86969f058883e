// Package testutil holds fixtures shared by host and service tests.
package testutil

import (
	"testing"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
)

// Epoch is the fixed start time of test clocks.
var Epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// NewClock returns a manual clock set to Epoch.
func NewClock() *pomodoro.ManualClock {
	return pomodoro.NewManualClock(Epoch)
}

// NoteBuilder provides fluent API for saving test notes.
type NoteBuilder struct {
	kind    notes.Kind
	subject string
	topic   string
	content string
}

func NewNote() *NoteBuilder {
	return &NoteBuilder{
		kind:    notes.Flashcards,
		subject: "Biology",
		topic:   "Cells",
		content: "Q: What is a cell?\nA: The basic unit of life.",
	}
}

func (b *NoteBuilder) WithKind(k notes.Kind) *NoteBuilder {
	b.kind = k
	return b
}

func (b *NoteBuilder) WithSubject(s string) *NoteBuilder {
	b.subject = s
	return b
}

func (b *NoteBuilder) WithTopic(topic string) *NoteBuilder {
	b.topic = topic
	return b
}

func (b *NoteBuilder) WithContent(c string) *NoteBuilder {
	b.content = c
	return b
}

// SaveIn writes the note into the store of its kind under baseDir and
// returns the file path.
func (b *NoteBuilder) SaveIn(t testing.TB, baseDir string) string {
	t.Helper()
	store, err := notes.Open(baseDir, b.kind)
	if err != nil {
		t.Fatalf("open %s store: %v", b.kind, err)
	}
	return b.Save(t, store)
}

// Save writes the note into store, ignoring the builder's kind.
func (b *NoteBuilder) Save(t testing.TB, store *notes.Store) string {
	t.Helper()
	path, err := store.Write(b.subject, b.topic, b.content)
	if err != nil {
		t.Fatalf("write %s/%s: %v", b.subject, b.topic, err)
	}
	return path
}
