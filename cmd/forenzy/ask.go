package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/forenzy/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the Junior Lab AI one question",
	Long: `Send one question to the lab assistant and print the reply.

The assistant needs GROQ_API_KEY in the environment or in the env file.
Without it, or when the request fails, the fallback reply is printed.

Examples:
  forenzy ask "why does luminol glow?"
  forenzy ask --env-file ./secrets.env what is DNA`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "forenzy",
	})

	completer, err := newCompleter(logger)
	if err != nil {
		return err
	}

	reply, err := assistant.New(completer, logger).Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply.Text)
	return nil
}
