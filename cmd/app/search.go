package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/metrics"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search saved flashcards and quizzes",
		Long: `Search saved notes. Every word must appear in the subject, topic or
content. Narrow results with kind: and subject: filters.

Examples:
  studybuddy search mitosis
  studybuddy search kind:quiz subject:"World History" caesar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			svc, err := newService(&settings, metrics.New(), false)
			if err != nil {
				return err
			}
			matches, err := svc.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matches.")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%s/%s/%s: %s\n", m.Kind, m.Subject, m.Topic, m.Snippet)
			}
			return nil
		},
	}
}
