package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a note search string.
type SearchQuery struct {
	Kinds    []string
	Subjects []string
	Text     []string
}

var (
	kindRegex    = regexp.MustCompile(`kind:(\w+)`)
	subjectRegex = regexp.MustCompile(`subject:("[^"]+"|\S+)`)
)

// ParseSearchQuery breaks down a raw query string into its structured
// components. Subject filters may be quoted to include spaces.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if len(match) > 1 {
				values = append(values, strings.Trim(match[1], `"`))
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Kinds = extract(kindRegex)
	sq.Subjects = extract(subjectRegex)
	sq.Text = strings.Fields(query)

	return sq
}

// Empty reports whether the query has no filters and no text.
func (q SearchQuery) Empty() bool {
	return len(q.Kinds) == 0 && len(q.Subjects) == 0 && len(q.Text) == 0
}

// MatchText reports whether every text term appears in one of fields,
// ignoring case.
func (q SearchQuery) MatchText(fields ...string) bool {
	joined := strings.ToLower(strings.Join(fields, "\n"))
	for _, term := range q.Text {
		if !strings.Contains(joined, strings.ToLower(term)) {
			return false
		}
	}
	return true
}
