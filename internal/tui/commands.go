package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/study"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---
type TickMsg time.Time

type generatedMsg struct {
	kind   notes.Kind
	result study.Result
	err    error
}

type chatReplyMsg struct {
	reply string
	err   error
}

type exportedMsg struct {
	path string
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(config.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func generateCmd(ctx context.Context, svc *study.Service, kind notes.Kind, subject, topic, material string) tea.Cmd {
	return func() tea.Msg {
		var (
			res study.Result
			err error
		)
		if kind == notes.Quizzes {
			res, err = svc.GenerateQuiz(ctx, subject, topic, material)
		} else {
			res, err = svc.GenerateFlashcards(ctx, subject, topic)
		}
		return generatedMsg{kind: kind, result: res, err: err}
	}
}

// chatCmd works on a copy of the history so the update loop keeps sole
// ownership of the conversation.
func chatCmd(ctx context.Context, svc *study.Service, history []llm.Message) tea.Cmd {
	return func() tea.Msg {
		reply, err := svc.Reply(ctx, history)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func exportCmd(svc *study.Service, kind notes.Kind, subject, topic, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.ExportPDF(kind, subject, topic, dir)
		return exportedMsg{path: path, err: err}
	}
}
