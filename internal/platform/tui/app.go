package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forenzy/internal/assistant"
	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/exam"
	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/session"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// Env is the read-only content and services shared by every session.
// Over SSH one Env serves all connections.
type Env struct {
	Labs      config.LabsConfig
	Questions []exam.Question
	Completer assistant.Completer // nil means the assistant always falls back
	Logger    *log.Logger
	Runtime   core.RuntimeConfig
	ThemeName string // "default" or "mono"

	theme Theme
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Runtime.TickRate <= 0 {
		e.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	e.theme = ThemeByName(e.ThemeName)
	return e
}

// Option configures a new App.
type Option func(*App)

// WithSession skips the start screen for an already-named player.
func WithSession(s session.Session) Option {
	return func(a *App) {
		a.session = s
	}
}

// WithStartRoute opens route once the player has a session.
func WithStartRoute(r Route) Option {
	return func(a *App) {
		a.pending = &r
	}
}

type entry struct {
	route  Route
	screen Screen
}

// App is the top-level model: a stack of screens plus the per-session
// casebook and assistant.
type App struct {
	mu sync.Mutex // Close may come from the SSH connection goroutine

	env     Env
	keys    *KeyMapper
	store   *storage.Store
	ask     *assistant.Assistant
	session session.Session

	// ctx is cancelled on shutdown and aborts an assistant request in flight.
	ctx    context.Context
	cancel context.CancelFunc

	stack   []entry
	pending *Route

	width    int
	height   int
	quitting bool
	closed   bool
}

// NewApp creates an app with its own in-memory casebook.
func NewApp(env Env, opts ...Option) (*App, error) {
	env = env.withDefaults()

	store, err := storage.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open casebook: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		ctx:    ctx,
		cancel: cancel,
		env:    env,
		keys:   NewKeyMapper(),
		store:  store,
		ask:    assistant.New(env.Completer, env.Logger),
		width:  env.Runtime.ScreenW,
		height: env.Runtime.ScreenH,
	}
	for _, opt := range opts {
		opt(a)
	}

	first := Route{Name: RouteStart}
	if a.session.Valid() {
		first = Route{Name: RouteMenu}
	}
	if _, err := a.push(first); err != nil {
		cancel()
		store.Close()
		return nil, err
	}
	if a.session.Valid() && a.pending != nil {
		r := *a.pending
		a.pending = nil
		if _, err := a.open(r); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// Session returns the current player identity.
func (a *App) Session() session.Session {
	return a.session
}

// Store returns the session casebook.
func (a *App) Store() *storage.Store {
	return a.store
}

// Route returns the route of the visible screen.
func (a *App) Route() Route {
	if len(a.stack) == 0 {
		return Route{}
	}
	return a.stack[len(a.stack)-1].route
}

// Routes returns the stack from bottom to top.
func (a *App) Routes() []Route {
	routes := make([]Route, len(a.stack))
	for i, e := range a.stack {
		routes[i] = e.route
	}
	return routes
}

func (a *App) top() Screen {
	return a.stack[len(a.stack)-1].screen
}

// Init starts the tick loop and the first screen.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tickCmd(a.env.Runtime.TickRate), a.top().Init())
}

// Update routes messages to the visible screen and applies any navigation it requests.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quitting || a.closed {
		return a, nil
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.shutdown()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case TickMsg:
		cmds = append(cmds, tickCmd(a.env.Runtime.TickRate))
	}

	cmds = append(cmds, a.top().Update(msg))
	cmds = append(cmds, a.applyTransitions())
	return a, tea.Batch(cmds...)
}

// applyTransitions drains navigation requests from the visible screen.
// A screen opened by a transition may itself request another.
func (a *App) applyTransitions() tea.Cmd {
	var cmds []tea.Cmd
	for i := 0; i < 8; i++ {
		t, ok := a.top().Next()
		if !ok {
			break
		}
		cmd, quit := a.apply(t)
		cmds = append(cmds, cmd)
		if quit {
			break
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) apply(t Transition) (tea.Cmd, bool) {
	switch {
	case t.Quit:
		a.shutdown()
		return tea.Quit, true

	case t.Back:
		if len(a.stack) == 1 {
			a.shutdown()
			return tea.Quit, true
		}
		a.pop()
		return a.focusTop(), false

	case t.Session != nil:
		a.session = *t.Session
		a.env.Logger.Info("session started", "session", a.session.ID(), "name", a.session.Name())
		to := Route{Name: RouteMenu}
		if a.pending != nil {
			to = *a.pending
			a.pending = nil
		}
		if _, err := a.open(Route{Name: RouteMenu}); err != nil {
			a.env.Logger.Error("cannot open menu", "error", err)
			return nil, false
		}
		if to.Name == RouteMenu {
			return a.top().Init(), false
		}
		t.To = to
	}

	cmd, err := a.open(t.To)
	if err != nil {
		a.env.Logger.Warn("navigation failed", "route", t.To.String(), "error", err)
		return nil, false
	}
	return cmd, false
}

// open shows route. A route already on the stack is returned to, closing
// everything above it; anything else is pushed.
func (a *App) open(r Route) (tea.Cmd, error) {
	if r.Name != RouteStart && !a.session.Valid() {
		a.pending = &r
		r = Route{Name: RouteStart}
	}

	for i := len(a.stack) - 1; i >= 0; i-- {
		if a.stack[i].route == r {
			for len(a.stack) > i+1 {
				a.pop()
			}
			return a.focusTop(), nil
		}
	}
	return a.push(r)
}

func (a *App) push(r Route) (tea.Cmd, error) {
	s, err := a.build(r)
	if err != nil {
		return nil, err
	}
	if a.width > 0 && a.height > 0 {
		s.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	a.stack = append(a.stack, entry{route: r, screen: s})
	a.env.Logger.Debug("screen opened", "route", r.String(), "depth", len(a.stack))
	return s.Init(), nil
}

func (a *App) pop() {
	n := len(a.stack) - 1
	e := a.stack[n]
	a.stack = a.stack[:n]
	if c, ok := e.screen.(closer); ok {
		c.Close()
	}
	a.env.Logger.Debug("screen closed", "route", e.route.String(), "depth", len(a.stack))
}

// focuser is implemented by screens that reload state when shown again.
type focuser interface {
	Focus() tea.Cmd
}

func (a *App) focusTop() tea.Cmd {
	if f, ok := a.top().(focuser); ok {
		return f.Focus()
	}
	return nil
}

var errUnknownRoute = errors.New("tui: unknown route")

func (a *App) build(r Route) (Screen, error) {
	env := a.env
	switch r.Name {
	case RouteStart:
		return newStartScreen(env), nil
	case RouteMenu:
		return newMenuScreen(env, a.session, a.store), nil
	case RouteExplore:
		return newExploreScreen(env), nil
	case RouteInfo:
		card, ok := env.Labs.InfoCard(r.Param)
		if !ok {
			return nil, fmt.Errorf("%w: info card %q", errUnknownRoute, r.Param)
		}
		return newInfoScreen(env, card), nil
	case RouteEvidences:
		return newEvidencesScreen(env, a.store), nil
	case RouteLab:
		lab, err := registry.Create(r.Param, env.Labs)
		if err != nil {
			return nil, err
		}
		lab.Reset(env.Runtime)
		return newLabScreen(env, lab, a.store, a.keys), nil
	case RouteExam:
		return newExamScreen(env, a.session, a.store)
	case RouteResults:
		return newResultsScreen(env, a.session, r.Score, a.store), nil
	case RouteAssistant:
		return newAssistantScreen(a.ctx, env, a.ask), nil
	case RouteCasebook:
		return newCasebookScreen(env, a.store), nil
	}
	return nil, fmt.Errorf("%w: %s", errUnknownRoute, r)
}

// View renders the visible screen.
func (a *App) View() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quitting {
		return ""
	}
	return a.top().View()
}

// Close tears down every screen, cancelling lab timers, and releases the casebook.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdown()
}

func (a *App) shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	a.quitting = true
	a.cancel()
	for len(a.stack) > 0 {
		a.pop()
	}
	if err := a.store.Close(); err != nil {
		a.env.Logger.Warn("cannot close casebook", "error", err)
	}
}

// Run starts the Bubble Tea program with a fresh app.
func Run(env Env, opts ...Option) error {
	app, err := NewApp(env, opts...)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
