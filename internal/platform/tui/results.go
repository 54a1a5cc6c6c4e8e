package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forenzy/internal/exam"
	"github.com/vovakirdan/forenzy/internal/session"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// resultsScreen awards the badge for a submitted exam.
type resultsScreen struct {
	nav
	env     Env
	session session.Session
	score   int
	tier    exam.Tier
	keys    *KeyMapper

	best    int
	hasBest bool
	width   int
}

func newResultsScreen(env Env, s session.Session, score int, store *storage.Store) *resultsScreen {
	r := &resultsScreen{
		env:     env,
		session: s,
		score:   score,
		tier:    exam.Classify(score),
		keys:    NewKeyMapper(),
	}
	best, ok, err := store.BestExam()
	if err != nil {
		env.Logger.Warn("cannot read best exam", "error", err)
	}
	r.best, r.hasBest = best.Score, ok
	return r
}

func (r *resultsScreen) Init() tea.Cmd {
	return nil
}

func (r *resultsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case tea.KeyMsg:
		switch r.keys.MapKeyToMenuAction(msg) {
		case MenuActionSelect:
			r.goTo(Route{Name: RouteMenu})
		case MenuActionBack:
			r.back()
		case MenuActionQuit:
			r.quit()
		}
	}
	return nil
}

// badgeLineWidth is the widest detective line the card draws.
const badgeLineWidth = 34

// badgeIcon picks the medal drawn above the tier label.
func badgeIcon(t exam.Tier) string {
	switch {
	case t.Min >= 90:
		return "🏆"
	case t.Min >= 70:
		return "🥈"
	}
	return "⭐"
}

func (r *resultsScreen) View() string {
	t := r.env.theme

	best := ""
	if r.hasBest && r.best > r.score {
		best = t.Muted.Render(fmt.Sprintf("Best this session: %d%%", r.best))
	}

	card := t.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		badgeIcon(r.tier),
		t.CardTitle.Render(r.tier.Label),
		t.Badge.Render(r.tier.Badge),
		"",
		t.Score.Render(fmt.Sprintf("Your Score: %d%%", r.score)),
		"",
		t.Greeting.MaxWidth(badgeLineWidth).Render(r.session.DetectiveLine()),
	))

	return page(r.width,
		t.Title.Render("Case Closed!"),
		t.Subtitle.Render("Great job! Your scientific analysis is complete."),
		"",
		card,
		best,
		"",
		t.ItemActive.Render("> [ Return to Menu ]"),
		"",
		t.Help.Render("enter: menu  •  esc: back to exam  •  q: quit"),
	)
}
