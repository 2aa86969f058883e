package tui

import (
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) render() string {
	theme := m.deps.Theme
	width := m.contentWidth()

	var body string
	switch m.page {
	case PageFlashcards:
		body = m.flashcards.view(theme, width)
	case PageQuiz:
		body = m.quiz.view(theme, width)
	case PageChat:
		body = m.chat.view(theme, width, m.busy)
	case PagePomodoro:
		body = m.timer.view(theme)
	case PageSearch:
		body = m.search.view(theme, width)
	default:
		body = m.renderWelcome()
	}

	sections := []string{m.renderHeader(width), body}
	if status := m.renderStatus(width); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.renderFooter(width))
	return theme.Base.Render(strings.Join(sections, "\n\n"))
}

func (m MainModel) renderHeader(width int) string {
	theme := m.deps.Theme
	title := theme.Title.Render(m.page.Title())
	r := m.timer.reading
	if r.Phase == pomodoro.Idle {
		return title
	}
	style := theme.Work
	if r.Phase == pomodoro.OnBreak {
		style = theme.Break
	}
	clock := style.Render("⏳ " + FormatReading(r))
	gap := width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		return title + "\n" + clock
	}
	return title + strings.Repeat(" ", gap) + clock
}

func (m MainModel) renderWelcome() string {
	theme := m.deps.Theme
	items := []struct{ key, label, hint string }{
		{"f", "Flashcards", "generate cards for a topic"},
		{"q", "Quiz Mode", "turn your notes into a quiz"},
		{"c", "Chatbot", "talk to your study buddy"},
		{"p", "Pomodoro Timer", "focus and break cycles"},
		{"/", "Search", "find saved notes"},
	}
	var b strings.Builder
	b.WriteString(theme.Body.Render("Your cozy corner for flashcards, quizzes and focus time.") + "\n\n")
	for _, it := range items {
		b.WriteString(theme.Highlight.Render("["+it.key+"] ") + theme.Header.Render(it.label) + "  " + theme.Dim.Render(it.hint) + "\n")
	}
	b.WriteString("\n" + theme.Dim.Render("v"+VersionLabel()))
	return b.String()
}

func (m MainModel) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.deps.Theme.Error.Render(truncate("Error: "+m.status, width))
	}
	return m.deps.Theme.Success.Render(truncate(m.status, width))
}

func (m MainModel) renderFooter(width int) string {
	help := m.keys.HelpForPage(m.page)
	return m.deps.Theme.Dim.Render(wrap(help, width, 0))
}
