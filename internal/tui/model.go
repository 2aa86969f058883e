package tui

import (
	"context"

	"github.com/akyairhashvil/studybuddy/internal/chime"
	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/akyairhashvil/studybuddy/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Deps are the collaborators the terminal host drives.
type Deps struct {
	Service    *study.Service
	Timer      *pomodoro.Timer
	Clock      pomodoro.Clock
	Notifier   chime.Notifier
	Metrics    *metrics.Recorder
	ReportsDir string
	Theme      Theme
}

// MainModel is the root bubbletea model that switches between pages.
type MainModel struct {
	ctx  context.Context
	deps Deps
	keys *HandlerRegistry

	page       Page
	flashcards notesPage
	quiz       notesPage
	chat       chatPage
	timer      TimerManager
	search     SearchManager

	busy      bool
	status    string
	statusErr bool
	width     int
	height    int
}

func NewMainModel(ctx context.Context, deps Deps) MainModel {
	if deps.Clock == nil {
		deps.Clock = pomodoro.RealClock{}
	}
	if deps.Notifier == nil {
		deps.Notifier = chime.Nop{}
	}
	if deps.Theme.Name == "" {
		deps.Theme = ThemeByName("default")
	}
	m := MainModel{
		ctx:        ctx,
		deps:       deps,
		keys:       defaultRegistry(),
		flashcards: newNotesPage(notes.Flashcards),
		quiz:       newNotesPage(notes.Quizzes),
		chat:       newChatPage(),
		timer:      NewTimerManager(deps.Timer, deps.Clock),
		search:     NewSearchManager(),
		width:      config.DefaultContentWidth,
	}
	for _, kind := range notes.Kinds() {
		m.refreshNotes(kind)
	}
	m.resize()
	return m
}

func (m MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Timer.Running() {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case TickMsg:
		return m.handleTick()
	case generatedMsg:
		return m.handleGenerated(msg)
	case chatReplyMsg:
		return m.handleChatReply(msg)
	case exportedMsg:
		return m.handleExported(msg)
	case tea.KeyMsg:
		next, cmd, handled := m.keys.Handle(m, msg.String())
		if handled {
			return next, cmd
		}
		return m.forwardKey(msg)
	}
	return m.forwardKey(msg)
}

// forwardKey hands input the registry did not claim to the focused widget.
func (m MainModel) forwardKey(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageFlashcards:
		m.flashcards, cmd = m.flashcards.updateWidget(msg)
	case PageQuiz:
		m.quiz, cmd = m.quiz.updateWidget(msg)
	case PageChat:
		m.chat.input, cmd = m.chat.input.Update(msg)
	case PagePomodoro:
		m.timer, cmd = m.timer.updateInput(msg)
	case PageSearch:
		if !m.search.inResults {
			m.search.Input, cmd = m.search.Input.Update(msg)
		}
	}
	return m, cmd
}

func (m *MainModel) contentWidth() int {
	w := m.width - 4
	if w < config.MinContentWidth {
		w = config.MinContentWidth
	}
	return w
}

func (m *MainModel) resize() {
	w := m.contentWidth()
	m.flashcards.resize(w)
	m.quiz.resize(w)
	m.chat.resize(w)
	m.timer.resize(w)
	m.search.resize(w)
}

func (m *MainModel) pageFor(kind notes.Kind) *notesPage {
	if kind == notes.Quizzes {
		return &m.quiz
	}
	return &m.flashcards
}

func (m *MainModel) refreshNotes(kind notes.Kind) {
	store, err := m.deps.Service.Store(kind)
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.pageFor(kind).refreshSubjects(store); err != nil {
		util.LogError("list "+string(kind), err)
		m.setError(err)
	}
}

func (m *MainModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *MainModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m MainModel) View() string {
	return m.render()
}
