package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/platform/tui"
	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/session"
)

var (
	flagName    string
	flagLogFile string
	flagDebug   bool
)

var playCmd = &cobra.Command{
	Use:   "play [lab]",
	Short: "Start the game",
	Long: `Start Forenzy. With a lab id the game opens that lab as soon as the
player has a name.

Controls:
  Arrows/WASD  - Move, page cards, pick reagents
  Enter/Space  - Select, answer, scan, add reagent
  T            - Toggle the dark room (luminol)
  Esc          - Back
  Ctrl+S       - Save a lab snapshot
  Q/Ctrl+C     - Quit

Examples:
  forenzy play
  forenzy play blood --name Ada
  forenzy play --log forenzy.log --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&flagName, "name", "", "Detective name (skips the start screen)")
		c.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
		c.Flags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	var opts []tui.Option

	if len(args) == 1 {
		labID := args[0]
		if !registry.Exists(labID) {
			msg := fmt.Sprintf("unknown lab %q", labID)
			if s := registry.Suggest(labID); s != "" {
				msg += fmt.Sprintf(", did you mean %q?", s)
			}
			return fmt.Errorf("%s\nRun 'forenzy list' to see the labs", msg)
		}
		opts = append(opts, tui.WithStartRoute(tui.Route{Name: tui.RouteLab, Param: labID}))
	}

	if flagName != "" {
		s, err := session.New(flagName)
		if err != nil {
			return err
		}
		opts = append(opts, tui.WithSession(s))
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	env, err := loadEnv(logger, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	})
	if err != nil {
		return err
	}

	return tui.Run(env, opts...)
}

// playLogger logs to --log when given; the alt screen owns the terminal otherwise.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := tea.LogToFile(flagLogFile, "forenzy")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "forenzy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}
