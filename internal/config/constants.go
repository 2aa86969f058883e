package config

import "time"

// Application identity.
const (
	AppName        = "studybuddy"
	ConfigFileName = "config.yaml"
	LogFileName    = "studybuddy.log"
)

// Text-generation endpoint defaults.
const (
	DefaultBaseURL        = "https://openrouter.ai/api/v1/"
	DefaultModel          = "gpt-4o-mini"
	DefaultRequestTimeout = 20 * time.Second
	APIKeyEnv             = "OPENROUTER_API_KEY"
)

// Chat history limits: once a conversation exceeds MaxChatMessages it is cut
// back to the system message plus the last KeepChatMessages.
const (
	MaxChatMessages  = 30
	KeepChatMessages = 20
	SystemPersona    = "You are a helpful, friendly study buddy."
)

// Storage layout.
const (
	StorageDirName = "storage"
	FlashcardsDir  = "flashcards"
	QuizzesDir     = "quizzes"
	NoteExtension  = ".md"
)

// Pomodoro polling and web host.
const (
	TickInterval      = time.Second
	DefaultListenAddr = "127.0.0.1:8501"
	SessionCookieName = "studybuddy_session"
	SessionCookieTTL  = 12 * time.Hour
	ShutdownTimeout   = 5 * time.Second
	MaxRequestBytes   = 64 << 10
)
