package pomodoro

// Duration bounds, in minutes.
const (
	MaxWorkMinutes  = 180
	MaxBreakMinutes = 60

	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// Config holds the work and break lengths in minutes.
type Config struct {
	WorkMinutes  int
	BreakMinutes int
}

// DefaultConfig returns the classic 25/5 split.
func DefaultConfig() Config {
	return Config{WorkMinutes: DefaultWorkMinutes, BreakMinutes: DefaultBreakMinutes}
}

// Validate reports a *ConfigError when either value is out of bounds.
func (c Config) Validate() error {
	if c.WorkMinutes <= 0 || c.WorkMinutes > MaxWorkMinutes {
		return &ConfigError{Field: "work", Value: c.WorkMinutes, Max: MaxWorkMinutes}
	}
	if c.BreakMinutes <= 0 || c.BreakMinutes > MaxBreakMinutes {
		return &ConfigError{Field: "break", Value: c.BreakMinutes, Max: MaxBreakMinutes}
	}
	return nil
}

// total returns the phase length in seconds. Idle has no length.
func (c Config) total(p Phase) int {
	switch p {
	case Working:
		return c.WorkMinutes * 60
	case OnBreak:
		return c.BreakMinutes * 60
	default:
		return 0
	}
}
