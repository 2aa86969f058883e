package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/util"
	"github.com/akyairhashvil/studybuddy/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser interface",
		Long: `Start the web interface.

Examples:
  studybuddy serve
  studybuddy serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			addr = util.FirstNonEmpty(addr, settings.ListenAddr)
			rec := metrics.New()
			svc, err := newService(&settings, rec, true)
			if err != nil {
				return err
			}
			srv, err := web.NewServer(svc, web.Options{
				Clock:    pomodoro.RealClock{},
				Pomodoro: settings.Pomodoro(),
				Metrics:  rec,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8501)")
	return cmd
}
