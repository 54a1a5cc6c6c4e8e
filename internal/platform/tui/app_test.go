package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forenzy/internal/assistant"
	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/exam"
	_ "github.com/vovakirdan/forenzy/internal/labs/blood"
	_ "github.com/vovakirdan/forenzy/internal/labs/bones"
	_ "github.com/vovakirdan/forenzy/internal/labs/fingerprint"
	_ "github.com/vovakirdan/forenzy/internal/labs/glass"
	"github.com/vovakirdan/forenzy/internal/session"
)

func testEnv(t *testing.T) Env {
	t.Helper()
	labs, err := config.DefaultLabs()
	require.NoError(t, err)
	questions, err := config.DefaultQuestions()
	require.NoError(t, err)
	return Env{Labs: labs, Questions: questions}
}

func newTestApp(t *testing.T, env Env, opts ...Option) *App {
	t.Helper()
	app, err := NewApp(env, opts...)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func mustSession(t *testing.T, name string) session.Session {
	t.Helper()
	s, err := session.New(name)
	require.NoError(t, err)
	return s
}

func typeText(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(a *App, k tea.KeyType) {
	a.Update(tea.KeyMsg{Type: k})
}

func tick(a *App, n int) {
	for i := 0; i < n; i++ {
		a.Update(TickMsg(time.Now()))
	}
}

// twentyQuestions has option A correct everywhere.
func twentyQuestions() []exam.Question {
	qs := make([]exam.Question, 20)
	for i := range qs {
		qs[i] = exam.Question{Prompt: "Question?", OptionA: "Right", OptionB: "Wrong", Correct: 0}
	}
	return qs
}

func TestStartRejectsBlankName(t *testing.T) {
	app := newTestApp(t, testEnv(t))

	press(app, tea.KeyEnter)
	assert.Equal(t, RouteStart, app.Route().Name)
	assert.Contains(t, app.View(), "Please enter your name")

	typeText(app, "   ")
	press(app, tea.KeyEnter)
	assert.Equal(t, RouteStart, app.Route().Name)
	assert.False(t, app.Session().Valid())
}

func TestNameGreetsOnMenu(t *testing.T) {
	app := newTestApp(t, testEnv(t))

	typeText(app, "Ada")
	press(app, tea.KeyEnter)

	require.Equal(t, RouteMenu, app.Route().Name)
	assert.Equal(t, "Ada", app.Session().Name())
	assert.Contains(t, app.View(), "Hi, Ada!")
	assert.Contains(t, app.View(), "Evidence logged: 0/4")
}

func TestExamScenarioShowsSeniorSleuth(t *testing.T) {
	env := testEnv(t)
	env.Questions = twentyQuestions()
	app := newTestApp(t, env)

	typeText(app, "Ada")
	press(app, tea.KeyEnter)
	require.Contains(t, app.View(), "Hi, Ada!")

	// Test Mode is the second menu entry
	press(app, tea.KeyDown)
	press(app, tea.KeyEnter)
	require.Equal(t, RouteExam, app.Route().Name)

	for i := 0; i < 20; i++ {
		if i < 17 {
			press(app, tea.KeyLeft)
		} else {
			press(app, tea.KeyRight)
		}
		press(app, tea.KeyEnter)
	}
	press(app, tea.KeyEnter)

	require.Equal(t, Route{Name: RouteResults, Score: 85}, app.Route())
	view := app.View()
	assert.Contains(t, view, "Case Closed!")
	assert.Contains(t, view, "Senior Sleuth")
	assert.Contains(t, view, "Your Score: 85%")
	assert.Contains(t, view, "Detective Ada")

	entries, err := app.Store().ExamResults(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].Name)
	assert.Equal(t, 17, entries[0].Correct)

	press(app, tea.KeyEnter)
	assert.Equal(t, []Route{{Name: RouteStart}, {Name: RouteMenu}}, app.Routes())
}

func TestSubmitWithGapsIsRejected(t *testing.T) {
	app := newTestApp(t, testEnv(t),
		WithSession(mustSession(t, "Ada")),
		WithStartRoute(Route{Name: RouteExam}),
	)

	press(app, tea.KeyLeft)
	for i := 0; i < len(testEnv(t).Questions); i++ {
		press(app, tea.KeyEnter)
	}
	press(app, tea.KeyEnter)

	assert.Equal(t, RouteExam, app.Route().Name)
	assert.Contains(t, app.View(), "Answer every question first")
}

func TestResultsTiers(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{100, "Master Detective"},
		{90, "Master Detective"},
		{89, "Senior Sleuth"},
		{70, "Senior Sleuth"},
		{69, "Junior Agent"},
		{0, "Junior Agent"},
	}

	for _, tt := range tests {
		app := newTestApp(t, testEnv(t),
			WithSession(mustSession(t, "Grace")),
			WithStartRoute(Route{Name: RouteResults, Score: tt.score}),
		)
		view := app.View()
		assert.Contains(t, view, tt.label, "score %d", tt.score)
		assert.Contains(t, view, "Detective Grace")
	}
}

func TestLongNameIsClippedOnlyOnTheBadge(t *testing.T) {
	name := strings.Repeat("x", 40)
	app := newTestApp(t, testEnv(t))

	typeText(app, name)
	press(app, tea.KeyEnter)
	require.Equal(t, name, app.Session().Name())
	assert.Contains(t, app.View(), "Hi, "+name+"!")

	_, err := app.open(Route{Name: RouteResults, Score: 85})
	require.NoError(t, err)
	view := app.View()
	assert.Contains(t, view, "Detective "+strings.Repeat("x", badgeLineWidth-len("Detective ")))
	assert.NotContains(t, view, "Detective "+name)
}

func TestRoutesNeedASession(t *testing.T) {
	app := newTestApp(t, testEnv(t), WithStartRoute(Route{Name: RouteLab, Param: "glass"}))
	require.Equal(t, RouteStart, app.Route().Name)

	typeText(app, "Ada")
	press(app, tea.KeyEnter)

	assert.Equal(t, []Route{
		{Name: RouteStart},
		{Name: RouteMenu},
		{Name: RouteLab, Param: "glass"},
	}, app.Routes())
}

func TestLabSolveIsLoggedOnTheBoard(t *testing.T) {
	app := newTestApp(t, testEnv(t), WithSession(mustSession(t, "Ada")))

	// menu -> Explore -> Evidences -> Glass
	press(app, tea.KeyEnter)
	require.Equal(t, RouteExplore, app.Route().Name)
	press(app, tea.KeyDown)
	press(app, tea.KeyEnter)
	require.Equal(t, RouteEvidences, app.Route().Name)
	press(app, tea.KeyEnter)
	require.Equal(t, Route{Name: RouteLab, Param: "glass"}, app.Route())

	// three walkthrough pages, then the correct answer
	for i := 0; i < 4; i++ {
		press(app, tea.KeyEnter)
		tick(app, 1)
	}
	solved, err := app.Store().IsSolved("glass")
	require.NoError(t, err)
	require.True(t, solved)

	// 2500ms at 30 ticks/s
	tick(app, 76)
	require.Equal(t, RouteEvidences, app.Route().Name)
	assert.Contains(t, app.View(), "✓")

	press(app, tea.KeyEsc)
	press(app, tea.KeyEsc)
	assert.Contains(t, app.View(), "Evidence logged: 1/4")
}

func TestBackClosesLab(t *testing.T) {
	app := newTestApp(t, testEnv(t),
		WithSession(mustSession(t, "Ada")),
		WithStartRoute(Route{Name: RouteLab, Param: "blood"}),
	)
	lab, ok := app.top().(*labScreen)
	require.True(t, ok)

	press(app, tea.KeyEsc)
	assert.True(t, lab.closed)
	assert.Equal(t, RouteMenu, app.Route().Name)

	// ticks after teardown never reach the lab
	tick(app, 100)
	assert.Equal(t, RouteMenu, app.Route().Name)
}

func TestUnknownLabStaysPut(t *testing.T) {
	_, err := NewApp(testEnv(t),
		WithSession(mustSession(t, "Ada")),
		WithStartRoute(Route{Name: RouteLab, Param: "glas"}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "glass"?`)
}

func TestInfoCard(t *testing.T) {
	app := newTestApp(t, testEnv(t),
		WithSession(mustSession(t, "Ada")),
		WithStartRoute(Route{Name: RouteInfo, Param: "forensics"}),
	)
	assert.Contains(t, app.View(), "What is Forensics?")

	press(app, tea.KeyEnter)
	assert.Equal(t, RouteMenu, app.Route().Name)
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t, testEnv(t), WithSession(mustSession(t, "Ada")))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Empty(t, app.View())
}

func TestTypingQOnStartDoesNotQuit(t *testing.T) {
	app := newTestApp(t, testEnv(t))

	typeText(app, "q")
	press(app, tea.KeyEnter)
	assert.Equal(t, "q", app.Session().Name())
}

func TestRouteString(t *testing.T) {
	routes := []Route{
		{Name: RouteMenu},
		{Name: RouteLab, Param: "blood"},
		{Name: RouteInfo, Param: "crime-scene"},
		{Name: RouteResults, Score: 85},
	}
	for _, r := range routes {
		assert.Equal(t, r, ParseRoute(r.String()))
	}
	assert.Equal(t, "results:85", Route{Name: RouteResults, Score: 85}.String())
}

type stubCompleter struct {
	calls int
	reply string
	err   error

	user        string
	hasDeadline bool
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.user = user
	_, s.hasDeadline = ctx.Deadline()
	return s.reply, s.err
}

// runAsk executes the request part of the batch returned by send.
func runAsk(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	return batch[len(batch)-1]()
}

func TestAssistantScreen(t *testing.T) {
	stub := &stubCompleter{reply: "Hey Detective! 🧪 DNA is a recipe."}
	s := newAssistantScreen(context.Background(), testEnv(t).withDefaults(), assistant.New(stub, nil))

	assert.Nil(t, s.send(), "blank input must not send")
	s.input.SetValue("   ")
	assert.Nil(t, s.send())
	assert.Equal(t, 0, stub.calls)

	s.input.SetValue("what is DNA?")
	cmd := s.send()
	assert.True(t, s.pending)
	assert.Contains(t, s.View(), "Mixing chemicals")

	s.input.SetValue("again?")
	assert.Nil(t, s.send(), "send is disabled while a request is pending")

	s.Update(runAsk(t, cmd))
	assert.False(t, s.pending)
	assert.Equal(t, 1, stub.calls)
	assert.Contains(t, s.View(), "DNA is a recipe")
}

func TestAssistantScreenFallback(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	s := newAssistantScreen(context.Background(), testEnv(t).withDefaults(), assistant.New(stub, nil))

	s.input.SetValue("why is the sky blue?")
	s.Update(runAsk(t, s.send()))

	view := s.View()
	assert.True(t, strings.Contains(view, "lab tools are broken"), view)
}

func TestAssistantScreenSendsTextAsTyped(t *testing.T) {
	stub := &stubCompleter{reply: "Hey Detective! 🔍"}
	s := newAssistantScreen(context.Background(), testEnv(t).withDefaults(), assistant.New(stub, nil))

	s.input.SetValue("  what is luminol?  ")
	s.Update(runAsk(t, s.send()))

	require.Equal(t, 1, stub.calls)
	assert.Equal(t, "  what is luminol?  ", stub.user)
	assert.False(t, stub.hasDeadline, "requests carry no deadline")
}

// blockingCompleter waits until the request context is cancelled.
type blockingCompleter struct {
	started chan struct{}
}

func (b *blockingCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	close(b.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestCloseAbortsPendingAsk(t *testing.T) {
	env := testEnv(t)
	blocker := &blockingCompleter{started: make(chan struct{})}
	env.Completer = blocker
	app := newTestApp(t, env,
		WithSession(mustSession(t, "Ada")),
		WithStartRoute(Route{Name: RouteAssistant}),
	)
	s, ok := app.top().(*assistantScreen)
	require.True(t, ok)

	s.input.SetValue("why is blood red?")
	cmd := s.send()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	done := make(chan tea.Msg, 1)
	go func() { done <- batch[len(batch)-1]() }()

	<-blocker.started
	app.Close()

	select {
	case msg := <-done:
		reply, ok := msg.(assistantReplyMsg)
		require.True(t, ok)
		assert.True(t, reply.reply.Failed)
	case <-time.After(5 * time.Second):
		t.Fatal("request still running after Close")
	}
}
