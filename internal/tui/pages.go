package tui

// Page is the screen currently shown.
type Page int

const (
	PageWelcome Page = iota
	PageFlashcards
	PageQuiz
	PageChat
	PagePomodoro
	PageSearch
)

func (p Page) Title() string {
	switch p {
	case PageFlashcards:
		return "📚 Flashcards"
	case PageQuiz:
		return "🧠 Quiz Mode"
	case PageChat:
		return "🤖 Study Buddy Chatbot"
	case PagePomodoro:
		return "⏳ Pomodoro Timer"
	case PageSearch:
		return "🔎 Search Notes"
	default:
		return "🐰 Study Buddy AI 🌸"
	}
}
