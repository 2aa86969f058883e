package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TimerManager is the pomodoro page: the shared timer, its last reading and
// the inputs for the next work/break lengths.
type TimerManager struct {
	timer    *pomodoro.Timer
	clock    pomodoro.Clock
	reading  pomodoro.Reading
	ticking  bool
	banner   string
	progress progress.Model

	work      textinput.Model
	brk       textinput.Model
	focusWork bool
}

func NewTimerManager(timer *pomodoro.Timer, clock pomodoro.Clock) TimerManager {
	cfg := timer.Config()
	work := minutesInput("Work minutes:  ", cfg.WorkMinutes, pomodoro.MaxWorkMinutes)
	brk := minutesInput("Break minutes: ", cfg.BreakMinutes, pomodoro.MaxBreakMinutes)
	tm := TimerManager{
		timer:     timer,
		clock:     clock,
		reading:   timer.Tick(clock.Now()),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(config.ProgressBarWidth)),
		work:      work,
		brk:       brk,
		focusWork: true,
	}
	tm.applyFocus()
	return tm
}

func minutesInput(prompt string, value, max int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.CharLimit = len(strconv.Itoa(max))
	in.Width = 4
	in.SetValue(strconv.Itoa(value))
	return in
}

func (tm *TimerManager) applyFocus() tea.Cmd {
	tm.work.Blur()
	tm.brk.Blur()
	if tm.focusWork {
		return tm.work.Focus()
	}
	return tm.brk.Focus()
}

func (tm *TimerManager) toggleFocus() tea.Cmd {
	tm.focusWork = !tm.focusWork
	return tm.applyFocus()
}

// apply stages the typed lengths. While running they take effect at the
// next phase change.
func (tm *TimerManager) apply() (string, error) {
	// Blank or unparsable input becomes 0 and is rejected by Configure.
	work, _ := strconv.Atoi(strings.TrimSpace(tm.work.Value()))
	brk, _ := strconv.Atoi(strings.TrimSpace(tm.brk.Value()))
	if err := tm.timer.Configure(work, brk); err != nil {
		return "", err
	}
	if tm.timer.Running() {
		return "Saved " + FormatConfig(tm.timer.Config()) + ", applies after this phase", nil
	}
	tm.reading = tm.timer.Tick(tm.clock.Now())
	return "Saved " + FormatConfig(tm.timer.Config()), nil
}

// start begins a session and returns the tick command when no tick chain is
// already pending.
func (tm *TimerManager) start() tea.Cmd {
	tm.timer.Start()
	tm.banner = ""
	tm.reading = tm.timer.Tick(tm.clock.Now())
	if tm.ticking {
		return nil
	}
	tm.ticking = true
	return tickCmd()
}

func (tm *TimerManager) stop() {
	tm.timer.Stop()
	tm.banner = ""
	tm.reading = tm.timer.Tick(tm.clock.Now())
}

// tick reads the timer once. The returned reading reports a phase change
// through Transitioned; keepTicking is false once the timer has stopped.
func (tm *TimerManager) tick() (r pomodoro.Reading, keepTicking bool) {
	if !tm.timer.Running() {
		tm.ticking = false
		tm.reading = tm.timer.Tick(tm.clock.Now())
		return tm.reading, false
	}
	tm.reading = tm.timer.Tick(tm.clock.Now())
	if tm.reading.Transitioned {
		tm.banner = celebration(tm.reading.Phase)
	}
	return tm.reading, true
}

func celebration(next pomodoro.Phase) string {
	if next == pomodoro.OnBreak {
		return "🎈🎈 Time for a break! 🎈🎈"
	}
	return "🎈🎈 Break over, back to work! 🎈🎈"
}

func (tm TimerManager) updateInput(msg tea.Msg) (TimerManager, tea.Cmd) {
	var cmd tea.Cmd
	if tm.focusWork {
		tm.work, cmd = tm.work.Update(msg)
	} else {
		tm.brk, cmd = tm.brk.Update(msg)
	}
	return tm, cmd
}

func (tm *TimerManager) resize(width int) {
	w := config.ProgressBarWidth
	if width < w {
		w = width
	}
	tm.progress.Width = w
}

func (tm TimerManager) view(theme Theme) string {
	var b strings.Builder
	b.WriteString(tm.work.View() + "\n")
	b.WriteString(tm.brk.View() + "\n\n")

	r := tm.reading
	style := theme.Dim
	switch r.Phase {
	case pomodoro.Working:
		style = theme.Work
	case pomodoro.OnBreak:
		style = theme.Break
	}
	if r.Phase == pomodoro.Idle {
		b.WriteString(style.Render("Timer not running. Press s to start.") + "\n")
		b.WriteString(theme.Dim.Render("Next session: "+FormatConfig(tm.timer.Config())) + "\n")
	} else {
		b.WriteString(style.Render(fmt.Sprintf("%s: %s", r.Phase, pomodoro.Format(r.Remaining))) + "\n")
		b.WriteString(tm.progress.ViewAs(progressOf(r)) + "\n")
		if staged, active := tm.timer.Config(), tm.timer.Active(); staged != active {
			b.WriteString(theme.Dim.Render("Next phase uses "+FormatConfig(staged)) + "\n")
		}
	}
	if tm.banner != "" {
		b.WriteString("\n" + theme.Celebrate.Render(tm.banner) + "\n")
	}
	return b.String()
}
