package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/chime"
	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/tui"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

func runTUI(cmd *cobra.Command, opts *rootOptions, theme string) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	rec := metrics.New()
	svc, err := newService(&settings, rec, true)
	if err != nil {
		return err
	}
	timer, err := pomodoro.New(pomodoro.RealClock{}, settings.Pomodoro())
	if err != nil {
		return err
	}

	// Log lines written to the terminal would corrupt the alternate screen.
	logCloser, err := util.LogToFile(settings.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeQuietly(logCloser)
	util.Logf("starting %s %s", config.AppName, tui.VersionLabel())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := tui.NewMainModel(ctx, tui.Deps{
		Service:    svc,
		Timer:      timer,
		Clock:      pomodoro.RealClock{},
		Notifier:   chime.New(settings.Sound),
		Metrics:    rec,
		ReportsDir: util.ReportsDir(config.AppName),
		Theme:      tui.ThemeByName(theme),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
