package study

import (
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

const snippetLength = 80

// Match is one saved note found by Search.
type Match struct {
	Kind    notes.Kind `json:"kind"`
	Subject string     `json:"subject"`
	Topic   string     `json:"topic"`
	Snippet string     `json:"snippet"`
}

// Search looks through saved notes. The query accepts "kind:" and
// "subject:" filters, and every remaining word must appear in the subject,
// topic or content. Results are ordered by kind, subject and topic.
func (s *Service) Search(query string) ([]Match, error) {
	q := util.ParseSearchQuery(query)
	var matches []Match
	for _, kind := range s.searchKinds(q) {
		store, err := s.Store(kind)
		if err != nil {
			return nil, err
		}
		subjects, err := store.Subjects()
		if err != nil {
			return nil, err
		}
		for _, subject := range subjects {
			if !subjectWanted(q, subject) {
				continue
			}
			topics, err := store.Topics(subject)
			if err != nil {
				return nil, err
			}
			for _, topic := range topics {
				content, err := store.Read(subject, topic)
				if err != nil {
					util.LogError("search read", err)
					continue
				}
				if !q.MatchText(subject, topic, content) {
					continue
				}
				matches = append(matches, Match{
					Kind:    kind,
					Subject: subject,
					Topic:   topic,
					Snippet: snippet(content, q.Text),
				})
			}
		}
	}
	return matches, nil
}

func (s *Service) searchKinds(q util.SearchQuery) []notes.Kind {
	if len(q.Kinds) == 0 {
		return notes.Kinds()
	}
	var kinds []notes.Kind
	seen := make(map[notes.Kind]bool)
	for _, name := range q.Kinds {
		if kind, ok := notes.ParseKind(name); ok && !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func subjectWanted(q util.SearchQuery, subject string) bool {
	if len(q.Subjects) == 0 {
		return true
	}
	for _, want := range q.Subjects {
		if strings.EqualFold(want, subject) {
			return true
		}
	}
	return false
}

// snippet is the first non-blank line mentioning a term, or the first
// non-blank line when nothing does.
func snippet(content string, terms []string) string {
	var first string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		lower := strings.ToLower(line)
		for _, term := range terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				return shorten(line)
			}
		}
	}
	return shorten(first)
}

func shorten(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetLength {
		return s
	}
	return string(runes[:snippetLength-3]) + "..."
}
