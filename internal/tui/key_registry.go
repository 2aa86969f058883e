package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler reports handled=false to let lower-priority bindings or the
// focused widget see the key.
type KeyHandler func(m MainModel, key string) (MainModel, tea.Cmd, bool)

// KeyBinding maps one or more keys to a handler on a set of pages. No pages
// means every page.
type KeyBinding struct {
	Keys        []string
	Handler     KeyHandler
	Description string
	Pages       []Page
	Priority    int
}

func (b KeyBinding) on(page Page) bool {
	if len(b.Pages) == 0 {
		return true
	}
	for _, p := range b.Pages {
		if p == page {
			return true
		}
	}
	return false
}

func (b KeyBinding) label() string {
	return "[" + strings.Join(b.Keys, "/") + "]" + b.Description
}

// HandlerRegistry dispatches key presses to page-scoped bindings, highest
// priority first and in registration order within a priority.
type HandlerRegistry struct {
	ordered []KeyBinding
	byKey   map[string][]KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byKey: make(map[string][]KeyBinding)}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.ordered = append(r.ordered, b)
	for _, key := range b.Keys {
		list := append(r.byKey[key], b)
		sort.SliceStable(list, func(i, j int) bool { return list[i].Priority > list[j].Priority })
		r.byKey[key] = list
	}
}

func (r *HandlerRegistry) Handle(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	for _, b := range r.byKey[key] {
		if !b.on(m.page) {
			continue
		}
		if next, cmd, handled := b.Handler(m, key); handled {
			return next, cmd, true
		}
	}
	return m, nil, false
}

// HelpForPage lists described bindings in registration order.
func (r *HandlerRegistry) HelpForPage(page Page) string {
	var parts []string
	for _, b := range r.ordered {
		if b.Description != "" && b.on(page) {
			parts = append(parts, b.label())
		}
	}
	return strings.Join(parts, " ")
}
