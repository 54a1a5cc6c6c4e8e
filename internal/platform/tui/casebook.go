package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forenzy/internal/registry"
	"github.com/vovakirdan/forenzy/internal/storage"
)

// Casebook layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the lab sidebar
	sidebarWidth       = 22
	maxExams           = 50
)

// CasebookKeyMap defines the key bindings for the casebook.
type CasebookKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CasebookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CasebookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

func casebookKeys(km KeyMap) CasebookKeyMap {
	return CasebookKeyMap{Up: km.Up, Down: km.Down, Back: km.Back, Quit: km.Quit}
}

// casebookScreen lists the solved labs and the exams taken this session.
type casebookScreen struct {
	nav
	env   Env
	store *storage.Store
	keys  CasebookKeyMap
	table table.Model
	help  help.Model

	labs   []registry.LabInfo
	solved map[string]storage.SolvedEntry
	exams  []storage.ExamEntry

	width  int
	height int
}

func newCasebookScreen(env Env, store *storage.Store) *casebookScreen {
	c := &casebookScreen{
		env:    env,
		store:  store,
		keys:   casebookKeys(DefaultKeyMap()),
		help:   help.New(),
		labs:   registry.List(),
		width:  env.Runtime.ScreenW,
		height: env.Runtime.ScreenH,
	}
	c.table = c.createTable()
	c.load()
	return c
}

// createTable creates the exam table sized to the window.
func (c *casebookScreen) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Detective", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Badge", Width: 18},
		{Title: "When", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(c.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the casebook and fills the table.
func (c *casebookScreen) load() {
	c.solved = make(map[string]storage.SolvedEntry)
	entries, err := c.store.SolvedLabs()
	if err != nil {
		c.env.Logger.Warn("cannot read solved labs", "error", err)
	}
	for _, e := range entries {
		c.solved[e.LabID] = e
	}

	c.exams, err = c.store.ExamResults(maxExams)
	if err != nil {
		c.env.Logger.Warn("cannot read exam results", "error", err)
		c.exams = nil
	}

	rows := make([]table.Row, len(c.exams))
	for i, e := range c.exams {
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(c.exams)-i),
			e.Name,
			fmt.Sprintf("%d%%", e.Score),
			e.Tier,
			e.CreatedAt.Format("15:04"),
		}
	}
	c.table.SetRows(rows)
	c.table.GotoTop()
}

func (c *casebookScreen) Init() tea.Cmd {
	return nil
}

func (c *casebookScreen) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Quit):
			c.quit()
			return nil
		case key.Matches(msg, c.keys.Back):
			c.back()
			return nil
		}

	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.table = c.createTable()
		c.load()
		c.help.Width = msg.Width
		return nil

	case TickMsg:
		return nil
	}

	c.table, cmd = c.table.Update(msg)
	return cmd
}

func (c *casebookScreen) View() string {
	t := c.env.theme

	var body string
	if c.width >= minWidthForSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, c.renderSidebar(), "  ", c.renderTable())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, c.renderSidebar(), c.renderTable())
	}

	return page(c.width,
		t.Title.Render("CASEBOOK"),
		"",
		body,
		"",
		helpView(t, c.help, c.keys),
	)
}

// renderSidebar lists every lab with its solve count.
func (c *casebookScreen) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString("Evidence\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")
	for _, info := range c.labs {
		e, ok := c.solved[info.ID]
		mark := "  "
		if ok {
			mark = c.env.theme.Check.Render("✓ ")
		}
		line := mark + info.Title
		if e.Times > 1 {
			line += fmt.Sprintf(" x%d", e.Times)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

// renderTable renders the exam table or an empty message.
func (c *casebookScreen) renderTable() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(c.exams) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		return style.Render(empty.Render("No exams taken yet.\nFinish the labs and earn a badge!"))
	}
	return style.Render(c.table.View())
}
