package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/charmbracelet/x/ansi"
)

// FormatDuration formats a duration for display (e.g., "2h 15m", "45s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatConfig renders a timer config as "25m work / 5m break".
func FormatConfig(cfg pomodoro.Config) string {
	return fmt.Sprintf("%s work / %s break",
		FormatDuration(time.Duration(cfg.WorkMinutes)*time.Minute),
		FormatDuration(time.Duration(cfg.BreakMinutes)*time.Minute))
}

// FormatReading returns the phase label and MM:SS, or "Idle".
func FormatReading(r pomodoro.Reading) string {
	if r.Phase == pomodoro.Idle {
		return r.Phase.String()
	}
	return fmt.Sprintf("%s %s", r.Phase, pomodoro.Format(r.Remaining))
}

// progressOf is the elapsed fraction of the current phase.
func progressOf(r pomodoro.Reading) float64 {
	if r.Phase == pomodoro.Idle || r.Total <= 0 {
		return 0
	}
	done := float64(r.Total-r.Remaining) / float64(r.Total)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, config.TruncationSuffix)
}

// wrap word-wraps s to width and keeps at most maxLines trailing lines.
func wrap(s string, width, maxLines int) string {
	if width > 0 {
		s = ansi.Wrap(s, width, "")
	}
	return tailLines(s, maxLines)
}

func tailLines(s string, max int) string {
	if max <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(lines[len(lines)-max:], "\n")
}
