package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var kindName, subject, topic, outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved flashcards or a quiz as PDF",
		Long: `Write a saved note to a PDF file.

Examples:
  studybuddy export --kind flashcards --subject Biology --topic Cells
  studybuddy export --kind quiz --subject History --topic Rome --out ./pdfs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := notes.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown kind %q (want flashcards or quizzes)", kindName)
			}
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			svc, err := newService(&settings, metrics.New(), false)
			if err != nil {
				return err
			}
			outDir = util.FirstNonEmpty(outDir, util.ReportsDir(config.AppName))
			path, err := svc.ExportPDF(kind, subject, topic, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "flashcards", "flashcards or quizzes")
	cmd.Flags().StringVar(&subject, "subject", "", "subject folder")
	cmd.Flags().StringVar(&topic, "topic", "", "topic name")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default the reports directory)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}
