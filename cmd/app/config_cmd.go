package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := util.FirstNonEmpty(opts.configPath, config.DefaultConfigPath())
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			if err := settings.Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			path := util.FirstNonEmpty(opts.configPath, config.DefaultConfigPath())
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
