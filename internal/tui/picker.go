package tui

import (
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
)

// picker is a scrolling single-choice list.
type picker struct {
	items  []string
	cursor int
	offset int
}

func (p *picker) SetItems(items []string) {
	p.items = items
	if p.cursor >= len(items) {
		p.cursor = len(items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.clampOffset()
}

func (p *picker) Up() {
	if p.cursor > 0 {
		p.cursor--
	}
	p.clampOffset()
}

func (p *picker) Down() {
	if p.cursor < len(p.items)-1 {
		p.cursor++
	}
	p.clampOffset()
}

// Selected returns the highlighted item, if any.
func (p picker) Selected() (string, bool) {
	if len(p.items) == 0 {
		return "", false
	}
	return p.items[p.cursor], true
}

func (p picker) Empty() bool { return len(p.items) == 0 }

func (p *picker) clampOffset() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+config.MaxListItems {
		p.offset = p.cursor - config.MaxListItems + 1
	}
}

func (p picker) View(theme Theme, focused bool) string {
	if len(p.items) == 0 {
		return theme.Dim.Render("  (none)")
	}
	end := p.offset + config.MaxListItems
	if end > len(p.items) {
		end = len(p.items)
	}
	var b strings.Builder
	for i := p.offset; i < end; i++ {
		line := "  " + p.items[i]
		if i == p.cursor {
			line = "> " + p.items[i]
			if focused {
				line = theme.Focused.Render(line)
			} else {
				line = theme.Highlight.Render(line)
			}
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
