package config

// Layout constants.
const (
	// MinContentWidth is the narrowest body the pages render into.
	MinContentWidth = 30

	// DefaultContentWidth is used before the first WindowSizeMsg arrives.
	DefaultContentWidth = 80

	// ProgressBarWidth is the preferred width of the pomodoro progress bar.
	ProgressBarWidth = 40

	// ChatHistoryLines caps how many rendered chat lines stay on screen.
	ChatHistoryLines = 18
)

// Display limits.
const (
	// MaxListItems limits subjects/topics shown before the list scrolls.
	MaxListItems = 10

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	// MaxNameLength is the maximum subject or topic length.
	MaxNameLength = 80

	// MaxMaterialLength is the maximum quiz material length.
	MaxMaterialLength = 8000

	// MaxChatInputLength is the maximum length of one chat message.
	MaxChatInputLength = 2000
)
