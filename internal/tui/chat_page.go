package tui

import (
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/charmbracelet/bubbles/textinput"
)

type chatPage struct {
	conv  *llm.Conversation
	input textinput.Model
}

func newChatPage() chatPage {
	in := textinput.New()
	in.Prompt = "You: "
	in.Placeholder = "Ask me anything..."
	in.CharLimit = config.MaxChatInputLength
	in.Focus()
	return chatPage{conv: llm.NewConversation(), input: in}
}

func (c *chatPage) resize(width int) {
	c.input.Width = width - len(c.input.Prompt) - 1
}

func (c chatPage) view(theme Theme, width int, busy bool) string {
	turns := c.conv.Turns()
	var lines []string
	if len(turns) == 0 {
		lines = append(lines, theme.Dim.Render("Say hello to your study buddy."))
	}
	for _, m := range turns {
		if m.Role == llm.RoleUser {
			lines = append(lines, theme.Highlight.Render(wrap("You: "+m.Content, width, 0)))
		} else {
			lines = append(lines, theme.Body.Render(wrap("Bot: "+m.Content, width, 0)))
		}
	}
	if busy {
		lines = append(lines, theme.Dim.Render("Bot is thinking..."))
	}
	history := tailLines(strings.Join(lines, "\n"), config.ChatHistoryLines)
	return history + "\n\n" + c.input.View()
}
