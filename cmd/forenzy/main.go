// forenzy is a forensic science game for kids, played in the terminal.
//
// Usage:
//
//	forenzy                  - Start the game
//	forenzy play [lab]       - Start the game, optionally straight into a lab
//	forenzy list             - List the evidence labs
//	forenzy ask <question>   - Ask the Junior Lab AI one question
//	forenzy serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--config <path>       - Lab content YAML
//	--questions <path>    - Exam question bank CSV
//	--env-file <path>     - Dotenv file with GROQ_API_KEY (default: .env)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import labs to register them
	_ "github.com/vovakirdan/forenzy/internal/labs/blood"
	_ "github.com/vovakirdan/forenzy/internal/labs/bones"
	_ "github.com/vovakirdan/forenzy/internal/labs/fingerprint"
	_ "github.com/vovakirdan/forenzy/internal/labs/glass"
)

var (
	// Global flags
	flagFPS       int
	flagConfig    string
	flagQuestions string
	flagEnvFile   string
	flagTheme     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forenzy",
	Short: "Forenzy - become a junior forensic detective",
	Long: `Forenzy teaches the basics of forensic science through four small labs:
fingerprints, bloodstains, bones and broken glass. Finish the labs, then
take the final exam to earn your detective badge.

Available commands:
  play     - Start the game (default)
  list     - Show the evidence labs
  ask      - Ask the Junior Lab AI a question
  serve    - Start SSH server for remote play

Examples:
  forenzy
  forenzy play blood --name Ada
  forenzy ask "why does luminol glow?"
  forenzy serve --ssh :2222`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lab content YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", "", "Path to custom exam questions CSV")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Dotenv file to read the assistant key from (default .env)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default or mono")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
}
