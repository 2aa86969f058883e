package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	notePages = []Page{PageFlashcards, PageQuiz}
	formPages = []Page{PageFlashcards, PageQuiz, PagePomodoro}
	subPages  = []Page{PageFlashcards, PageQuiz, PageChat, PagePomodoro, PageSearch}
)

func defaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	bind := func(keys []string, h KeyHandler, desc string, pages ...Page) {
		r.Register(KeyBinding{Keys: keys, Handler: h, Description: desc, Pages: pages})
	}
	one := func(key string) []string { return []string{key} }

	r.Register(KeyBinding{Keys: one("ctrl+c"), Handler: handleQuit, Description: "quit", Priority: 100})
	r.Register(KeyBinding{Keys: one("esc"), Handler: handleHome, Description: "home", Pages: subPages, Priority: 90})

	bind([]string{"f", "1"}, gotoPage(PageFlashcards), "flashcards", PageWelcome)
	bind([]string{"q", "2"}, gotoPage(PageQuiz), "quiz", PageWelcome)
	bind([]string{"c", "3"}, gotoPage(PageChat), "chat", PageWelcome)
	bind([]string{"p", "4"}, gotoPage(PagePomodoro), "pomodoro", PageWelcome)
	bind([]string{"/", "5"}, gotoPage(PageSearch), "search", PageWelcome)

	bind([]string{"tab", "shift+tab"}, handleFocus, "next field", formPages...)
	bind([]string{"up", "down"}, handlePickerMove, "", notePages...)
	bind(one("enter"), handleNotesEnter, "", notePages...)
	bind(one("ctrl+s"), handleGenerate, "generate", notePages...)
	bind(one("ctrl+p"), handleExport, "export pdf", notePages...)

	bind(one("enter"), handleChatSend, "send", PageChat)
	bind(one("ctrl+l"), handleChatReset, "new chat", PageChat)

	bind(one("s"), handleTimerStart, "start", PagePomodoro)
	bind(one("x"), handleTimerStop, "stop", PagePomodoro)
	bind(one("enter"), handleTimerApply, "save lengths", PagePomodoro)

	bind(one("enter"), handleSearchEnter, "search/open", PageSearch)
	bind([]string{"tab", "shift+tab"}, handleSearchFocus, "results", PageSearch)
	bind([]string{"up", "down"}, handleSearchMove, "", PageSearch)
	return r
}

func handleQuit(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleHome(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	m.page = PageWelcome
	m.setStatus("")
	return m, nil, true
}

func gotoPage(p Page) KeyHandler {
	return func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		m.page = p
		m.setStatus("")
		switch p {
		case PageFlashcards:
			m.refreshNotes(notes.Flashcards)
		case PageQuiz:
			m.refreshNotes(notes.Quizzes)
		}
		return m, nil, true
	}
}

func (m *MainModel) activeNotes() *notesPage {
	if m.page == PageQuiz {
		return &m.quiz
	}
	return &m.flashcards
}

func handleFocus(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	if m.page == PagePomodoro {
		return m, m.timer.toggleFocus(), true
	}
	delta := 1
	if key == "shift+tab" {
		delta = -1
	}
	return m, m.activeNotes().cycleFocus(delta), true
}

func handlePickerMove(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	p := m.activeNotes()
	var list *picker
	switch p.focus {
	case focusSubjects:
		list = &p.subjects
	case focusTopics:
		list = &p.topics
	default:
		return m, nil, false
	}
	if key == "up" {
		list.Up()
	} else {
		list.Down()
	}
	if p.focus == focusSubjects {
		if store, err := m.deps.Service.Store(p.kind); err == nil {
			if err := p.refreshTopics(store); err != nil {
				m.setError(err)
			}
		}
	}
	return m, nil, true
}

// handleNotesEnter advances through the form, submits from the last input
// and opens entries in the saved-notes browser. The quiz material box keeps
// enter for new lines.
func handleNotesEnter(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	p := m.activeNotes()
	switch p.focus {
	case focusSubject:
		return m, p.setFocus(focusTopic), true
	case focusTopic:
		if p.lastInput() {
			return handleGenerate(m, key)
		}
		return m, p.setFocus(focusMaterial), true
	case focusSubjects:
		if _, ok := p.subjects.Selected(); ok {
			return m, p.setFocus(focusTopics), true
		}
		return m, nil, true
	case focusTopics:
		subject, ok := p.subjects.Selected()
		topic, ok2 := p.topics.Selected()
		if !ok || !ok2 {
			return m, nil, true
		}
		content, err := m.deps.Service.Read(p.kind, subject, topic)
		if err != nil {
			m.setError(err)
			return m, nil, true
		}
		p.show(subject, topic, content)
		m.setStatus(fmt.Sprintf("Viewing %s / %s", subject, topic))
		return m, p.setFocus(focusViewer), true
	}
	return m, nil, false
}

func handleGenerate(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.busy {
		return m, nil, true
	}
	p := m.activeNotes()
	subject, topic, material := p.form()
	m.busy = true
	m.setStatus("Generating " + p.kind.Label() + "...")
	return m, generateCmd(m.ctx, m.deps.Service, p.kind, subject, topic, material), true
}

func (m MainModel) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	p := m.pageFor(msg.kind)
	res := msg.result
	if res.Content != "" {
		p.show(res.Subject, res.Topic, res.Content)
	}
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.refreshNotes(msg.kind)
	p.selectSubject(res.Subject)
	if store, err := m.deps.Service.Store(msg.kind); err == nil {
		_ = p.refreshTopics(store)
	}
	m.setStatus("Saved to " + res.Path)
	return m, nil
}

func handleExport(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	p := m.activeNotes()
	subject, topic, ok := p.viewing()
	if !ok {
		m.setError(errors.New("open or generate a note before exporting"))
		return m, nil, true
	}
	m.setStatus("Exporting PDF...")
	return m, exportCmd(m.deps.Service, p.kind, subject, topic, m.deps.ReportsDir), true
}

func (m MainModel) handleExported(msg exportedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.setStatus("PDF written to " + msg.path)
	return m, nil
}

func handleChatSend(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.busy {
		return m, nil, true
	}
	input := strings.TrimSpace(m.chat.input.Value())
	if input == "" {
		return m, nil, true
	}
	m.chat.conv.Add(llm.RoleUser, input)
	m.chat.input.Reset()
	m.busy = true
	m.setStatus("")
	return m, chatCmd(m.ctx, m.deps.Service, m.chat.conv.Messages()), true
}

func (m MainModel) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.chat.conv.Add(llm.RoleAssistant, msg.reply)
	return m, nil
}

func handleChatReset(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.busy {
		return m, nil, true
	}
	m.chat.conv.Reset()
	m.setStatus("Started a new conversation")
	return m, nil, true
}

func handleTimerStart(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	cmd := m.timer.start()
	m.setStatus("Focus time!")
	return m, cmd, true
}

func handleTimerStop(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	m.timer.stop()
	m.setStatus("Timer stopped")
	return m, nil, true
}

func handleTimerApply(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	msg, err := m.timer.apply()
	if err != nil {
		m.setError(err)
		return m, nil, true
	}
	m.setStatus(msg)
	return m, nil, true
}

func (m MainModel) handleTick() (tea.Model, tea.Cmd) {
	r, keep := m.timer.tick()
	if !keep {
		return m, nil
	}
	if r.Transitioned {
		m.deps.Notifier.Notify(r.Phase)
		m.deps.Metrics.IncRollover(r.Phase.String())
	}
	return m, tickCmd()
}

// handleSearchEnter runs the query from the input box and opens the
// highlighted match from the result list.
func handleSearchEnter(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if !m.search.inResults {
		matches, err := m.deps.Service.Search(m.search.Input.Value())
		if err != nil {
			m.setError(err)
			return m, nil, true
		}
		m.search.setResults(matches)
		m.setStatus(fmt.Sprintf("%d match(es)", len(matches)))
		m.search.focusResults()
		return m, nil, true
	}
	r, ok := m.search.Selected()
	if !ok {
		return m, nil, true
	}
	content, err := m.deps.Service.Read(r.Kind, r.Subject, r.Topic)
	if err != nil {
		m.setError(err)
		return m, nil, true
	}
	m.refreshNotes(r.Kind)
	p := m.pageFor(r.Kind)
	p.selectSubject(r.Subject)
	if store, err := m.deps.Service.Store(r.Kind); err == nil {
		_ = p.refreshTopics(store)
	}
	p.show(r.Subject, r.Topic, content)
	cmd := p.setFocus(focusViewer)
	if r.Kind == notes.Quizzes {
		m.page = PageQuiz
	} else {
		m.page = PageFlashcards
	}
	m.setStatus(fmt.Sprintf("Viewing %s / %s", r.Subject, r.Topic))
	return m, cmd, true
}

func handleSearchFocus(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.search.inResults {
		m.search.focusInput()
		return m, textinput.Blink, true
	}
	m.search.focusResults()
	return m, nil, true
}

func handleSearchMove(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	if !m.search.inResults {
		return m, nil, false
	}
	if key == "up" {
		m.search.list.Up()
	} else {
		m.search.list.Down()
	}
	return m, nil, true
}
