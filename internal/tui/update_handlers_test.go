package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/testutil"
	"github.com/golang/mock/gomock"
)

func TestFlashcardsEnterAdvancesThenGenerates(t *testing.T) {
	env := setupTestModel(t)
	env.completer.EXPECT().
		Complete(gomock.Any(), llm.FlashcardPrompt("Cells")).
		Return("Q: What is a cell?", nil)

	m, _ := press(t, env.model, "f")
	m.flashcards.subject.SetValue("Biology")
	m, _ = press(t, m, "enter")
	if m.flashcards.focus != focusTopic {
		t.Fatalf("expected topic focus, got %v", m.flashcards.focus)
	}
	m.flashcards.topic.SetValue("Cells")
	m, cmd := press(t, m, "enter")
	if !m.busy {
		t.Fatalf("expected busy while generating")
	}
	if _, again := press(t, m, "ctrl+s"); again != nil {
		t.Fatalf("submit while busy should be ignored")
	}

	m, _ = run(t, m, cmd)
	if m.busy || m.statusErr {
		t.Fatalf("unexpected state busy=%v status=%q", m.busy, m.status)
	}
	if !strings.Contains(m.status, "Saved to") {
		t.Fatalf("expected saved status, got %q", m.status)
	}
	if m.flashcards.content != "Q: What is a cell?" {
		t.Fatalf("expected generated content shown, got %q", m.flashcards.content)
	}
	if got, _ := m.flashcards.subjects.Selected(); got != "Biology" {
		t.Fatalf("expected new subject selected, got %q", got)
	}
	if got, _ := m.flashcards.topics.Selected(); got != "Cells" {
		t.Fatalf("expected new topic listed, got %q", got)
	}
}

func TestGenerateMissingInputShowsError(t *testing.T) {
	env := setupTestModel(t)
	m, _ := press(t, env.model, "f")
	m, cmd := press(t, m, "ctrl+s")
	m, _ = run(t, m, cmd)
	if !m.statusErr || !strings.Contains(m.status, "subject") {
		t.Fatalf("expected missing subject error, got %q", m.status)
	}
	if m.busy {
		t.Fatalf("busy flag should clear after failure")
	}
}

func TestGenerateFailureKeepsForm(t *testing.T) {
	env := setupTestModel(t)
	env.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("status 500"))

	m, _ := press(t, env.model, "q")
	m.quiz.subject.SetValue("Geo")
	m.quiz.topic.SetValue("Rivers")
	m.quiz.material.SetValue("The Nile is long.")
	m, cmd := press(t, m, "ctrl+s")
	m, _ = run(t, m, cmd)
	if !m.statusErr || !strings.Contains(m.status, "500") {
		t.Fatalf("expected endpoint error, got %q", m.status)
	}
	if m.quiz.material.Value() != "The Nile is long." {
		t.Fatalf("form should keep its values")
	}
	if !m.quiz.subjects.Empty() {
		t.Fatalf("nothing should have been saved")
	}
}

func TestQuizEnterMovesToMaterial(t *testing.T) {
	env := setupTestModel(t)
	m, _ := press(t, env.model, "q")
	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "enter")
	if m.quiz.focus != focusMaterial {
		t.Fatalf("expected material focus, got %v", m.quiz.focus)
	}
	if cmd != nil && m.busy {
		t.Fatalf("enter on topic must not submit a quiz")
	}
	m, _ = press(t, m, "a")
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "b")
	if m.quiz.material.Value() != "a\nb" {
		t.Fatalf("expected newline in material, got %q", m.quiz.material.Value())
	}
	if m.busy {
		t.Fatalf("enter in material must not submit")
	}
}

func TestBrowseAndExportSavedNote(t *testing.T) {
	env := setupTestModel(t)
	store, err := env.service.Store(notes.Flashcards)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	for _, topic := range []string{"Cells", "Genes"} {
		testutil.NewNote().WithTopic(topic).WithContent("# "+topic).Save(t, store)
	}

	m, _ := press(t, env.model, "f")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	if m.flashcards.focus != focusSubjects {
		t.Fatalf("expected subjects focus, got %v", m.flashcards.focus)
	}
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "enter")
	if m.flashcards.content != "# Genes" || m.flashcards.focus != focusViewer {
		t.Fatalf("expected Genes in viewer, got %q (focus %v)", m.flashcards.content, m.flashcards.focus)
	}

	m, cmd := press(t, m, "ctrl+p")
	m, _ = run(t, m, cmd)
	if m.statusErr {
		t.Fatalf("export failed: %s", m.status)
	}
	path := strings.TrimPrefix(m.status, "PDF written to ")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected PDF at %q: %v", path, err)
	}
}

func TestExportWithoutNote(t *testing.T) {
	env := setupTestModel(t)
	m, _ := press(t, env.model, "q")
	m, cmd := press(t, m, "ctrl+p")
	if cmd != nil || !m.statusErr {
		t.Fatalf("expected an error and no command")
	}
}

func TestChatRoundTrip(t *testing.T) {
	env := setupTestModel(t)
	env.completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs []llm.Message) (string, error) {
			if len(msgs) != 2 || msgs[0].Role != llm.RoleSystem || msgs[1].Content != "hi" {
				t.Errorf("unexpected history %+v", msgs)
			}
			return "Hello! Ready to study?", nil
		})

	m, _ := press(t, env.model, "c")
	m.chat.input.SetValue("  hi ")
	m, cmd := press(t, m, "enter")
	if !m.busy || m.chat.input.Value() != "" {
		t.Fatalf("expected busy with cleared input")
	}
	if !strings.Contains(m.View(), "thinking") {
		t.Fatalf("expected thinking indicator")
	}
	m, _ = run(t, m, cmd)
	turns := m.chat.conv.Turns()
	if len(turns) != 2 || turns[1].Content != "Hello! Ready to study?" {
		t.Fatalf("unexpected turns %+v", turns)
	}
	if !strings.Contains(m.View(), "Bot: Hello! Ready to study?") {
		t.Fatalf("expected reply in view")
	}
}

func TestChatIgnoresBlankAndBusy(t *testing.T) {
	env := setupTestModel(t)
	m, _ := press(t, env.model, "c")
	if _, cmd := press(t, m, "enter"); cmd != nil {
		t.Fatalf("blank input should be ignored")
	}
	m.busy = true
	m.chat.input.SetValue("again")
	if _, cmd := press(t, m, "enter"); cmd != nil {
		t.Fatalf("input while busy should be ignored")
	}
}

func TestChatErrorKeepsUserTurn(t *testing.T) {
	env := setupTestModel(t)
	env.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", llm.ErrEmptyReply)

	m, _ := press(t, env.model, "c")
	m.chat.input.SetValue("hello")
	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)
	if !m.statusErr || m.busy {
		t.Fatalf("expected error status and idle")
	}
	if turns := m.chat.conv.Turns(); len(turns) != 1 || turns[0].Role != llm.RoleUser {
		t.Fatalf("expected only the user turn, got %+v", turns)
	}
}

func TestChatReset(t *testing.T) {
	env := setupTestModel(t)
	m, _ := press(t, env.model, "c")
	m.chat.conv.Add(llm.RoleUser, "hello")
	m, _ = press(t, m, "ctrl+l")
	if len(m.chat.conv.Turns()) != 0 {
		t.Fatalf("expected empty conversation")
	}
}
