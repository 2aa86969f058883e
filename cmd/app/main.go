package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/akyairhashvil/studybuddy/internal/tui"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	envFile    string
	storageDir string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var theme string
	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Study Buddy AI: flashcards, quizzes, a chatbot and a pomodoro timer",
		Version:       tui.VersionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, theme)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read before the environment")
	flags.StringVar(&opts.storageDir, "storage", "", "directory for saved flashcards and quizzes")
	rootCmd.Flags().StringVar(&theme, "theme", "default", "terminal colour theme (default, dracula)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newChatCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

// loadSettings applies flags on top of config.Load.
func loadSettings(opts *rootOptions) (config.Settings, error) {
	settings, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return settings, err
	}
	if opts.storageDir != "" {
		settings.StorageDir = opts.storageDir
	}
	return settings, nil
}

// resolveAPIKey prompts for a missing key on an interactive terminal.
func resolveAPIKey(settings *config.Settings, interactive bool, prompt func(string) (string, error)) error {
	if strings.TrimSpace(settings.APIKey) != "" {
		return nil
	}
	if !interactive {
		return fmt.Errorf("%w: set %s in the environment or a .env file", llm.ErrMissingAPIKey, config.APIKeyEnv)
	}
	key, err := prompt("OpenRouter API key: ")
	if err != nil {
		return err
	}
	if key == "" {
		return llm.ErrMissingAPIKey
	}
	settings.APIKey = key
	return nil
}

func promptForKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newService builds the study service. Commands that never reach the
// endpoint pass withClient=false and skip the key check.
func newService(settings *config.Settings, rec *metrics.Recorder, withClient bool) (*study.Service, error) {
	var completer llm.Completer
	if withClient {
		if err := resolveAPIKey(settings, stdinIsTerminal(), promptForKey); err != nil {
			return nil, err
		}
		client, err := llm.NewClient(llm.Options{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.RequestTimeout,
		})
		if err != nil {
			return nil, err
		}
		completer = client
	} else {
		completer = offlineCompleter{}
	}
	return study.New(completer, settings.StorageDir, rec)
}

var errOffline = errors.New("text generation is not available in this command")

type offlineCompleter struct{}

func (offlineCompleter) Complete(_ context.Context, _ []llm.Message) (string, error) {
	return "", errOffline
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
