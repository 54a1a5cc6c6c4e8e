package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// Smallest canvas a lab is drawn on; labs lay out for 80x24.
const (
	minLabW = 80
	minLabH = 24
)

// labScreen runs one lab on the tick loop.
type labScreen struct {
	nav
	env    Env
	lab    registry.Lab
	store  *storage.Store
	keys   *KeyMapper
	help   help.Model
	canvas *core.Canvas

	inputFrame core.InputFrame
	state      core.LabState
	recorded   bool // solve written to the casebook for this visit
	closed     bool
}

func newLabScreen(env Env, lab registry.Lab, store *storage.Store, keys *KeyMapper) *labScreen {
	return &labScreen{
		env:        env,
		lab:        lab,
		store:      store,
		keys:       keys,
		help:       help.New(),
		canvas:     core.NewCanvas(max(env.Runtime.ScreenW, minLabW), max(env.Runtime.ScreenH-1, minLabH)),
		inputFrame: core.NewInputFrame(),
		state:      lab.State(),
	}
}

func (s *labScreen) Init() tea.Cmd {
	s.env.Logger.Info("lab opened", "lab", s.lab.ID())
	return nil
}

func (s *labScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s.handleKey(msg)
	case tea.WindowSizeMsg:
		s.canvas.Resize(max(msg.Width, minLabW), max(msg.Height-1, minLabH))
		s.help.Width = msg.Width
	case TickMsg:
		s.handleTick()
	}
	return nil
}

// handleKey processes keyboard input. Actions are buffered until the next tick.
func (s *labScreen) handleKey(msg tea.KeyMsg) {
	if key.Matches(msg, s.keys.Keys().Screenshot) {
		s.saveScreenshot()
		return
	}

	action, isQuit := s.keys.MapKey(msg)
	switch {
	case isQuit:
		s.quit()
	case action == core.ActionBack:
		s.back()
	case action != core.ActionNone:
		s.inputFrame.Set(action)
	}
}

// handleTick steps the lab and reacts to solve and exit.
func (s *labScreen) handleTick() {
	if s.closed {
		return
	}

	result := s.lab.Step(s.inputFrame)
	s.inputFrame.Clear()
	s.state = result.State

	if result.JustSolved && !s.recorded {
		s.recorded = true
		if err := s.store.RecordSolved(s.lab.ID()); err != nil {
			s.env.Logger.Warn("cannot record solved lab", "lab", s.lab.ID(), "error", err)
		} else {
			s.env.Logger.Info("lab solved", "lab", s.lab.ID())
		}
	}

	if s.state.Exit {
		s.back()
	}
}

// Close cancels the lab's timers. Safe to call more than once.
func (s *labScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.lab.Close()
	s.env.Logger.Debug("lab closed", "lab", s.lab.ID(), "solved", s.state.Solved)
}

// saveScreenshot writes the current canvas to ~/.forenzy/screenshots.
func (s *labScreen) saveScreenshot() {
	s.canvas.Clear()
	s.lab.Render(s.canvas)

	home, err := os.UserHomeDir()
	if err != nil {
		s.env.Logger.Warn("cannot save snapshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".forenzy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.env.Logger.Warn("cannot save snapshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", s.lab.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(s.canvas.String()), 0o600); err != nil {
		s.env.Logger.Warn("cannot save snapshot", "error", err)
		return
	}
	s.env.Logger.Info("snapshot saved", "path", path)
}

func (s *labScreen) View() string {
	s.canvas.Clear()
	s.lab.Render(s.canvas)
	return RenderCanvas(s.canvas) + "\n" + s.env.theme.Help.Render(s.help.View(labHelp{keys: s.keys.Keys()}))
}
