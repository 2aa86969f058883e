package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/charmbracelet/bubbles/textinput"
)

// SearchManager backs the search page: a query box over every saved note and
// the matches of the last query.
type SearchManager struct {
	Input     textinput.Model
	Results   []study.Match
	list      picker
	inResults bool
	ran       bool
}

func NewSearchManager() SearchManager {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = `cells kind:quiz subject:"World History"`
	input.CharLimit = config.MaxNameLength * 2
	input.Focus()
	return SearchManager{Input: input}
}

func (s *SearchManager) setResults(matches []study.Match) {
	s.Results = matches
	s.ran = true
	labels := make([]string, len(matches))
	for i, r := range matches {
		labels[i] = fmt.Sprintf("%s/%s/%s", r.Kind, r.Subject, r.Topic)
	}
	s.list = picker{}
	s.list.SetItems(labels)
}

// Selected returns the highlighted match.
func (s SearchManager) Selected() (study.Match, bool) {
	if len(s.Results) == 0 {
		return study.Match{}, false
	}
	return s.Results[s.list.cursor], true
}

func (s *SearchManager) focusInput() {
	s.inResults = false
	s.Input.Focus()
}

func (s *SearchManager) focusResults() bool {
	if len(s.Results) == 0 {
		return false
	}
	s.inResults = true
	s.Input.Blur()
	return true
}

func (s *SearchManager) resize(width int) {
	s.Input.Width = width - len(s.Input.Prompt) - 1
}

func (s SearchManager) view(theme Theme, width int) string {
	var b strings.Builder
	b.WriteString(s.Input.View() + "\n\n")
	if !s.ran {
		b.WriteString(theme.Dim.Render("Press enter to search your saved flashcards and quizzes."))
		return b.String()
	}
	if len(s.Results) == 0 {
		b.WriteString(theme.Dim.Render("No matches."))
		return b.String()
	}
	b.WriteString(theme.Header.Render(fmt.Sprintf("%d match(es)", len(s.Results))) + "\n")
	b.WriteString(s.list.View(theme, s.inResults))
	if r, ok := s.Selected(); ok && r.Snippet != "" {
		b.WriteString("\n\n" + theme.Body.Render(wrap(r.Snippet, width, 0)))
	}
	return b.String()
}
