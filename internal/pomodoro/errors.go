package pomodoro

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) for out-of-range durations.
var ErrInvalidConfig = errors.New("invalid timer config")

type ConfigError struct {
	Field string
	Value int
	Max   int
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%v: %s minutes must be between 1 and %d, got %d", ErrInvalidConfig, e.Field, e.Max, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
