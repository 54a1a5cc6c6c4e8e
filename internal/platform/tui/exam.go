package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forenzy/internal/exam"
	"github.com/vovakirdan/forenzy/internal/session"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// incompleteMessage is shown when Submit is pressed with gaps.
const incompleteMessage = "Answer every question first"

// ExamKeyMap lists the exam bindings.
type ExamKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	PickA  key.Binding
	PickB  key.Binding
	Select key.Binding
	Back   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ExamKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PickA, k.PickB, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ExamKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func examKeys(km KeyMap) ExamKeyMap {
	next := km.Select
	next.SetHelp("enter", "next / submit")
	return ExamKeyMap{
		Up:   km.Up,
		Down: km.Down,
		PickA: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "option A"),
		),
		PickB: key.NewBinding(
			key.WithKeys("right", "b"),
			key.WithHelp("→/b", "option B"),
		),
		Select: next,
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// examScreen is the final test. The cursor walks the questions and then the
// submit button at index len(questions).
type examScreen struct {
	nav
	env     Env
	session session.Session
	store   *storage.Store
	scorer  *exam.Scorer
	keys    ExamKeyMap
	help    help.Model

	cursor int
	err    string
	width  int
	height int
}

func newExamScreen(env Env, s session.Session, store *storage.Store) (*examScreen, error) {
	scorer, err := exam.NewScorer(env.Questions)
	if err != nil {
		return nil, err
	}
	return &examScreen{
		env:     env,
		session: s,
		store:   store,
		scorer:  scorer,
		keys:    examKeys(DefaultKeyMap()),
		help:    help.New(),
		height:  env.Runtime.ScreenH,
	}, nil
}

func (e *examScreen) Init() tea.Cmd {
	return nil
}

func (e *examScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		e.help.Width = msg.Width

	case tea.KeyMsg:
		e.handleKey(msg)
	}
	return nil
}

func (e *examScreen) handleKey(msg tea.KeyMsg) {
	total := e.scorer.Total()
	switch {
	case key.Matches(msg, e.keys.Back):
		e.back()
	case key.Matches(msg, e.keys.Up):
		if e.cursor > 0 {
			e.cursor--
		}
	case key.Matches(msg, e.keys.Down):
		if e.cursor < total {
			e.cursor++
		}
	case key.Matches(msg, e.keys.PickA):
		e.pick(0)
	case key.Matches(msg, e.keys.PickB):
		e.pick(1)
	case key.Matches(msg, e.keys.Select):
		if e.cursor == total {
			e.submit()
			return
		}
		e.cursor++
	}
}

func (e *examScreen) pick(option int) {
	if e.cursor >= e.scorer.Total() {
		return
	}
	if err := e.scorer.Select(e.cursor, option); err != nil {
		e.env.Logger.Warn("cannot record answer", "question", e.cursor, "error", err)
		return
	}
	e.err = ""
}

func (e *examScreen) submit() {
	result, err := e.scorer.Submit()
	if errors.Is(err, exam.ErrIncomplete) {
		e.err = incompleteMessage
		return
	}
	if err != nil {
		e.env.Logger.Error("cannot score exam", "error", err)
		return
	}

	if _, err := e.store.RecordExam(e.session.Name(), result); err != nil {
		e.env.Logger.Warn("cannot record exam", "error", err)
	}
	e.env.Logger.Info("exam submitted",
		"session", e.session.ID(),
		"score", result.Score,
		"tier", result.Tier.Label,
	)
	e.goTo(Route{Name: RouteResults, Score: result.Score})
}

// window returns the range of questions that fit on screen around the cursor.
func (e *examScreen) window() (from, to int) {
	total := e.scorer.Total()
	visible := 4
	if e.height > 0 {
		visible = max((e.height-12)/3, 1)
	}
	if visible >= total {
		return 0, total
	}
	from = min(max(e.cursor-visible/2, 0), total-visible)
	return from, from + visible
}

func (e *examScreen) View() string {
	t := e.env.theme
	questions := e.scorer.Questions()

	var b strings.Builder
	from, to := e.window()
	if from > 0 {
		b.WriteString(t.Muted.Render("  ▲ more"))
		b.WriteString("\n")
	}
	for i := from; i < to; i++ {
		q := questions[i]
		style := t.ItemNormal
		cursor := "  "
		if i == e.cursor {
			style = t.ItemActive
			cursor = "> "
		}
		b.WriteString(style.Render(fmt.Sprintf("%sQ%d. %s", cursor, i+1, q.Prompt)))
		b.WriteString("\n")

		chosen, answered := e.scorer.Selection(i)
		opts := q.Options()
		line := "     "
		for j, opt := range opts {
			label := fmt.Sprintf("[%c] %s", 'A'+j, opt)
			if answered && chosen == j {
				line += t.Badge.Render(label)
			} else {
				line += t.ItemDescription.Render(label)
			}
			line += "   "
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	if to < len(questions) {
		b.WriteString(t.Muted.Render("  ▼ more"))
		b.WriteString("\n")
	}

	submit := t.ItemNormal.Render("  [ Submit Test ]")
	if e.cursor == len(questions) {
		submit = t.ItemActive.Render("> [ Submit Test ]")
	}

	errLine := ""
	if e.err != "" {
		errLine = t.Error.Render(e.err)
	}

	return page(e.width,
		t.Title.Render("Final Exam"),
		t.Subtitle.Render("Answer the questions to earn your badge!"),
		t.Muted.Render(fmt.Sprintf("Answered %d/%d", e.scorer.Answered(), e.scorer.Total())),
		"",
		b.String(),
		submit,
		errLine,
		"",
		helpView(t, e.help, e.keys),
	)
}
