package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/util"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type notesFocus int

const (
	focusSubject notesFocus = iota
	focusTopic
	focusMaterial
	focusSubjects
	focusTopics
	focusViewer
)

const (
	viewerHeight   = 12
	maxColumnWidth = 40
)

// notesPage drives both the flashcard and quiz screens: a generation form
// on top and a browser over the saved notes of the same kind below.
type notesPage struct {
	kind     notes.Kind
	subject  textinput.Model
	topic    textinput.Model
	material textarea.Model
	focus    notesFocus

	subjects picker
	topics   picker

	viewer      viewport.Model
	viewSubject string
	viewTopic   string
	content     string
}

func newNotesPage(kind notes.Kind) notesPage {
	subject := textinput.New()
	subject.Prompt = "Subject: "
	subject.Placeholder = "e.g. Biology"
	subject.CharLimit = config.MaxNameLength

	topic := textinput.New()
	topic.Prompt = "Topic:   "
	topic.Placeholder = "e.g. Photosynthesis"
	topic.CharLimit = config.MaxNameLength

	material := textarea.New()
	material.Placeholder = "Paste your notes here"
	material.CharLimit = config.MaxMaterialLength
	material.ShowLineNumbers = false
	material.SetHeight(6)

	p := notesPage{
		kind:     kind,
		subject:  subject,
		topic:    topic,
		material: material,
		viewer:   viewport.New(config.DefaultContentWidth, viewerHeight),
	}
	p.applyFocus()
	return p
}

// order is the tab cycle for this page.
func (p notesPage) order() []notesFocus {
	if p.kind == notes.Quizzes {
		return []notesFocus{focusSubject, focusTopic, focusMaterial, focusSubjects, focusTopics, focusViewer}
	}
	return []notesFocus{focusSubject, focusTopic, focusSubjects, focusTopics, focusViewer}
}

func (p *notesPage) cycleFocus(delta int) tea.Cmd {
	order := p.order()
	idx := 0
	for i, f := range order {
		if f == p.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	p.focus = order[idx]
	return p.applyFocus()
}

func (p *notesPage) setFocus(f notesFocus) tea.Cmd {
	p.focus = f
	return p.applyFocus()
}

func (p *notesPage) applyFocus() tea.Cmd {
	p.subject.Blur()
	p.topic.Blur()
	p.material.Blur()
	switch p.focus {
	case focusSubject:
		return p.subject.Focus()
	case focusTopic:
		return p.topic.Focus()
	case focusMaterial:
		return p.material.Focus()
	}
	return nil
}

func (p notesPage) editing() bool {
	return p.focus == focusSubject || p.focus == focusTopic || p.focus == focusMaterial
}

// lastInput reports whether enter on the focused field should submit.
func (p notesPage) lastInput() bool {
	if p.kind == notes.Quizzes {
		return false
	}
	return p.focus == focusTopic
}

func (p notesPage) form() (subject, topic, material string) {
	return p.subject.Value(), p.topic.Value(), p.material.Value()
}

func (p *notesPage) resize(width int) {
	p.subject.Width = width - len(p.subject.Prompt) - 1
	p.topic.Width = width - len(p.topic.Prompt) - 1
	p.material.SetWidth(width)
	p.viewer.Width = width
	if p.content != "" {
		p.viewer.SetContent(wrap(p.content, width, 0))
	}
}

func (p *notesPage) show(subject, topic, content string) {
	p.viewSubject = strings.TrimSpace(subject)
	p.viewTopic = strings.TrimSpace(topic)
	p.content = content
	p.viewer.SetContent(wrap(content, p.viewer.Width, 0))
	p.viewer.GotoTop()
}

// viewing returns the note currently shown, if any.
func (p notesPage) viewing() (subject, topic string, ok bool) {
	if p.viewSubject == "" || p.viewTopic == "" {
		return "", "", false
	}
	return p.viewSubject, p.viewTopic, true
}

func (p *notesPage) refreshSubjects(store *notes.Store) error {
	subjects, err := store.Subjects()
	if err != nil {
		return err
	}
	p.subjects.SetItems(subjects)
	return p.refreshTopics(store)
}

func (p *notesPage) refreshTopics(store *notes.Store) error {
	subject, ok := p.subjects.Selected()
	if !ok {
		p.topics.SetItems(nil)
		return nil
	}
	topics, err := store.Topics(subject)
	if err != nil {
		return err
	}
	p.topics.SetItems(topics)
	return nil
}

// selectSubject moves the subjects cursor to name, if present.
func (p *notesPage) selectSubject(name string) {
	for i, s := range p.subjects.items {
		if s == name {
			p.subjects.cursor = i
			p.subjects.clampOffset()
			return
		}
	}
}

func (p notesPage) updateWidget(msg tea.Msg) (notesPage, tea.Cmd) {
	var cmd tea.Cmd
	switch p.focus {
	case focusSubject:
		p.subject, cmd = p.subject.Update(msg)
	case focusTopic:
		p.topic, cmd = p.topic.Update(msg)
	case focusMaterial:
		p.material, cmd = p.material.Update(msg)
	case focusViewer:
		p.viewer, cmd = p.viewer.Update(msg)
	}
	return p, cmd
}

func (p notesPage) view(theme Theme, width int) string {
	var b strings.Builder
	b.WriteString(p.subject.View() + "\n")
	b.WriteString(p.topic.View() + "\n")
	if p.kind == notes.Quizzes {
		label := "Material:"
		if p.focus == focusMaterial {
			label = theme.Focused.Render(label)
		}
		b.WriteString(label + "\n" + p.material.View() + "\n")
	}

	b.WriteString("\n" + theme.Header.Render("Saved "+strings.ToLower(p.kind.Label())) + "\n")
	colWidth := util.Clamp((width-3)/2, 10, maxColumnWidth)
	col := lipgloss.NewStyle().Width(colWidth)
	left := col.Render(theme.Dim.Render("Subjects") + "\n" + p.subjects.View(theme, p.focus == focusSubjects))
	right := col.Render(theme.Dim.Render("Topics") + "\n" + p.topics.View(theme, p.focus == focusTopics))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " | ", right) + "\n")

	if p.content != "" {
		title := p.kind.Label()
		if subject, topic, ok := p.viewing(); ok {
			title = fmt.Sprintf("%s: %s / %s", p.kind.Label(), subject, topic)
		}
		if p.focus == focusViewer {
			title = theme.Focused.Render(truncate(title, width))
		} else {
			title = theme.Title.Render(truncate(title, width))
		}
		b.WriteString("\n" + title + "\n" + theme.Body.Render(p.viewer.View()))
	}
	return b.String()
}
