package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/study"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the study buddy in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			svc, err := newService(&settings, metrics.New(), true)
			if err != nil {
				return err
			}
			return runChat(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout(), os.Stderr)
		},
	}
}

// runChat is a line-oriented conversation: blank lines are skipped and
// "exit" or end of input quits. Endpoint errors are reported on errOut and
// the conversation carries on.
func runChat(ctx context.Context, svc *study.Service, in io.Reader, out, errOut io.Writer) error {
	conv := llm.NewConversation()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Fprintln(out, "🤖 Chatbot ready. Type messages and press Enter. Type 'exit' to quit.")
	fmt.Fprintln(out)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nExiting. Goodbye!")
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		reply, err := svc.Chat(ctx, conv, input)
		if err != nil {
			fmt.Fprintf(errOut, "Network/API error: %v\n", err)
			fmt.Fprintln(out, "Bot: ⚠️ Sorry, I couldn't reach the API right now.")
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintf(out, "Bot: %s\n\n", reply)
	}
}
