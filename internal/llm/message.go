package llm

import "github.com/akyairhashvil/studybuddy/internal/config"

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// FlashcardPrompt asks for flashcards on topic.
func FlashcardPrompt(topic string) []Message {
	return []Message{{Role: RoleUser, Content: "Make 5 flashcards about " + topic}}
}

// QuizPrompt asks for a quiz with answers drawn from material.
func QuizPrompt(material string) []Message {
	return []Message{{Role: RoleUser, Content: "Make a quiz with answers from this: " + material}}
}

// Conversation is a chat history that always starts with the system persona.
// Once it grows past config.MaxChatMessages it keeps the persona plus the
// most recent config.KeepChatMessages entries.
type Conversation struct {
	messages []Message
}

func NewConversation() *Conversation {
	c := &Conversation{}
	c.Reset()
	return c
}

func (c *Conversation) Reset() {
	c.messages = []Message{{Role: RoleSystem, Content: config.SystemPersona}}
}

func (c *Conversation) Add(role Role, content string) {
	c.messages = append(c.messages, Message{Role: role, Content: content})
	if len(c.messages) > config.MaxChatMessages {
		kept := make([]Message, 0, config.KeepChatMessages+1)
		kept = append(kept, c.messages[0])
		kept = append(kept, c.messages[len(c.messages)-config.KeepChatMessages:]...)
		c.messages = kept
	}
}

// Messages returns a copy of the history, persona first.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Turns returns the history without the system persona.
func (c *Conversation) Turns() []Message {
	out := make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

func (c *Conversation) Len() int { return len(c.messages) }
