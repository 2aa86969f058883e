package tui

import (
	"context"
	"testing"

	"github.com/akyairhashvil/studybuddy/internal/chime"
	"github.com/akyairhashvil/studybuddy/internal/llm/mock_llm"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/akyairhashvil/studybuddy/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
)

type testEnv struct {
	model     MainModel
	clock     *pomodoro.ManualClock
	completer *mock_llm.MockCompleter
	service   *study.Service
	chimes    *[]pomodoro.Phase
	reports   string
}

func setupTestModel(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	completer := mock_llm.NewMockCompleter(ctrl)
	svc, err := study.New(completer, t.TempDir(), metrics.New())
	if err != nil {
		t.Fatalf("study.New failed: %v", err)
	}
	clock := testutil.NewClock()
	timer, err := pomodoro.New(clock, pomodoro.DefaultConfig())
	if err != nil {
		t.Fatalf("pomodoro.New failed: %v", err)
	}
	var chimes []pomodoro.Phase
	env := &testEnv{
		clock:     clock,
		completer: completer,
		service:   svc,
		chimes:    &chimes,
		reports:   t.TempDir(),
	}
	env.model = NewMainModel(context.Background(), Deps{
		Service:    svc,
		Timer:      timer,
		Clock:      clock,
		Notifier:   chime.Func(func(p pomodoro.Phase) { chimes = append(chimes, p) }),
		Metrics:    metrics.New(),
		ReportsDir: env.reports,
	})
	return env
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m MainModel, key string) (MainModel, tea.Cmd) {
	t.Helper()
	return send(t, m, keyMsg(key))
}

func send(t *testing.T, m MainModel, msg tea.Msg) (MainModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MainModel)
	if !ok {
		t.Fatalf("expected MainModel, got %T", next)
	}
	return mm, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m MainModel, cmd tea.Cmd) (MainModel, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return send(t, m, cmd())
}
