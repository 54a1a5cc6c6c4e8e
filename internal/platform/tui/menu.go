package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/session"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// menuScreen greets the player and offers the two modes.
type menuScreen struct {
	nav
	env     Env
	session session.Session
	store   *storage.Store
	list    listMenu
	help    help.Model

	solved int
	total  int
	width  int
}

func newMenuScreen(env Env, s session.Session, store *storage.Store) *menuScreen {
	m := &menuScreen{
		env:     env,
		session: s,
		store:   store,
		help:    help.New(),
		list: newListMenu([]listItem{
			{Title: "🔍 Explore", Description: "Learn the secrets of Forensics!", Route: Route{Name: RouteExplore}},
			{Title: "📝 Test Mode", Description: "Are you a Master Sleuth?", Route: Route{Name: RouteExam}},
			{Title: "🤖 Junior Lab AI", Description: "Ask me a science secret!", Route: Route{Name: RouteAssistant}},
			{Title: "📁 Casebook", Description: "Solved labs and earned badges", Route: Route{Name: RouteCasebook}},
		}),
	}
	m.refresh()
	return m
}

func (m *menuScreen) Init() tea.Cmd {
	return nil
}

// Focus reloads the evidence count after a lab or exam.
func (m *menuScreen) Focus() tea.Cmd {
	m.refresh()
	return nil
}

func (m *menuScreen) refresh() {
	m.total = len(registry.List())
	set, err := m.store.SolvedSet()
	if err != nil {
		m.env.Logger.Warn("cannot read casebook", "error", err)
		return
	}
	m.solved = len(set)
}

func (m *menuScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		updateMenuKey(&m.nav, &m.list, msg)
	}
	return nil
}

func (m *menuScreen) View() string {
	t := m.env.theme
	return page(m.width,
		t.Greeting.Render(m.session.Greeting()),
		"",
		t.Title.Render("Welcome to Forenzy!"),
		t.Subtitle.Render("Ready to solve some mysteries, Junior Detective?"),
		"",
		m.list.view(t),
		t.Muted.Render(fmt.Sprintf("Evidence logged: %d/%d", m.solved, m.total)),
		"",
		helpView(t, m.help, m.list.keys.Keys()),
	)
}

// exploreScreen is the learning lab: reading cards, the evidence board and
// the way to the exam.
type exploreScreen struct {
	nav
	env   Env
	list  listMenu
	help  help.Model
	width int
}

func newExploreScreen(env Env) *exploreScreen {
	items := make([]listItem, 0, len(env.Labs.Info)+2)
	for i, card := range env.Labs.Info {
		items = append(items, listItem{
			Title: "📖 " + card.Title,
			Route: Route{Name: RouteInfo, Param: card.ID},
		})
		if i == 0 {
			items = append(items, listItem{
				Title:       "🧪 Evidences",
				Description: "Fingerprints, blood, bones and glass",
				Route:       Route{Name: RouteEvidences},
			})
		}
	}
	if len(env.Labs.Info) == 0 {
		items = append(items, listItem{Title: "🧪 Evidences", Route: Route{Name: RouteEvidences}})
	}
	items = append(items, listItem{
		Title:       "✅ All done",
		Description: "Take the final exam",
		Route:       Route{Name: RouteExam},
	})

	return &exploreScreen{env: env, list: newListMenu(items), help: help.New()}
}

func (e *exploreScreen) Init() tea.Cmd {
	return nil
}

func (e *exploreScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.help.Width = msg.Width
	case tea.KeyMsg:
		updateMenuKey(&e.nav, &e.list, msg)
	}
	return nil
}

func (e *exploreScreen) View() string {
	t := e.env.theme
	return page(e.width,
		t.Title.Render("Learning Lab"),
		t.Subtitle.Render("Pick a card to start your training!"),
		"",
		e.list.view(t),
		helpView(t, e.help, e.list.keys.Keys()),
	)
}

// infoScreen shows one reading card.
type infoScreen struct {
	nav
	env   Env
	card  config.InfoCard
	keys  *KeyMapper
	width int
}

func newInfoScreen(env Env, card config.InfoCard) *infoScreen {
	return &infoScreen{env: env, card: card, keys: NewKeyMapper()}
}

func (s *infoScreen) Init() tea.Cmd {
	return nil
}

func (s *infoScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		switch s.keys.MapKeyToMenuAction(msg) {
		case MenuActionSelect, MenuActionBack:
			s.back()
		case MenuActionQuit:
			s.quit()
		}
	}
	return nil
}

func (s *infoScreen) View() string {
	t := s.env.theme
	width := 60
	if s.width > 0 && s.width-8 < width {
		width = max(s.width-8, 20)
	}

	var body strings.Builder
	body.WriteString(t.CardTitle.Render(s.card.Title))
	body.WriteString("\n\n")
	for i, line := range s.card.Body {
		if i > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(lipgloss.NewStyle().Width(width - 6).Render("• " + line))
	}

	return page(s.width,
		t.Card.Width(width).Render(body.String()),
		"",
		t.Help.Render("enter/esc: back"),
	)
}
