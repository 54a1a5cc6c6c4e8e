package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// labBlurbs are the evidence board subtitles.
var labBlurbs = map[string]string{
	"glass":       "Which side was hit?",
	"blood":       "Is it really blood?",
	"bones":       "How old is the skull?",
	"fingerprint": "Loop, whorl or arch?",
}

// evidencesScreen is the board of the four labs.
type evidencesScreen struct {
	nav
	env   Env
	store *storage.Store
	list  listMenu
	help  help.Model
	width int
}

func newEvidencesScreen(env Env, store *storage.Store) *evidencesScreen {
	e := &evidencesScreen{env: env, store: store, help: help.New()}
	e.list = newListMenu(e.items())
	return e
}

func (e *evidencesScreen) items() []listItem {
	solved, err := e.store.SolvedSet()
	if err != nil {
		e.env.Logger.Warn("cannot read casebook", "error", err)
	}

	labs := registry.List()
	items := make([]listItem, 0, len(labs)+1)
	for _, info := range labs {
		items = append(items, listItem{
			Title:       info.Title,
			Description: labBlurbs[info.ID],
			Done:        solved[info.ID],
			Route:       Route{Name: RouteLab, Param: info.ID},
		})
	}
	return append(items, listItem{
		Title:       "✅ All done",
		Description: "Take the final exam",
		Route:       Route{Name: RouteExam},
	})
}

func (e *evidencesScreen) Init() tea.Cmd {
	return nil
}

// Focus refreshes the check marks when a lab returns to the board.
func (e *evidencesScreen) Focus() tea.Cmd {
	e.list.items = e.items()
	return nil
}

func (e *evidencesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.help.Width = msg.Width
	case tea.KeyMsg:
		updateMenuKey(&e.nav, &e.list, msg)
	}
	return nil
}

func (e *evidencesScreen) View() string {
	t := e.env.theme
	return page(e.width,
		t.Title.Render("Evidence Lab"),
		t.Subtitle.Render("Analyze the clues below 🧐"),
		"",
		e.list.view(t),
		helpView(t, e.help, e.list.keys.Keys()),
	)
}
