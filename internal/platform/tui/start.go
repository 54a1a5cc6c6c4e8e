package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forenzy/internal/session"
)

// emptyNameMessage is shown when the player submits a blank name.
const emptyNameMessage = "Please enter your name"

// startScreen asks for the detective's name and builds the session.
type startScreen struct {
	nav
	env   Env
	input textinput.Model
	err   string
	width int
}

func newStartScreen(env Env) *startScreen {
	ti := textinput.New()
	ti.Placeholder = "Detective name"
	ti.Prompt = "🔎 "
	ti.Width = 24
	ti.Focus()

	return &startScreen{env: env, input: ti}
}

func (s *startScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Focus re-arms the input when the player comes back to change their name.
func (s *startScreen) Focus() tea.Cmd {
	s.err = ""
	return s.input.Focus()
}

func (s *startScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			s.submit()
			return nil
		case tea.KeyEsc:
			s.quit()
			return nil
		}
		s.err = ""
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *startScreen) submit() {
	sess, err := session.New(s.input.Value())
	if err != nil {
		s.err = emptyNameMessage
		return
	}
	s.input.Blur()
	s.next = &Transition{Session: &sess}
}

func (s *startScreen) View() string {
	t := s.env.theme
	errLine := ""
	if s.err != "" {
		errLine = t.Error.Render(s.err)
	}
	return page(s.width,
		t.Title.Render("🕵️  F O R E N Z Y"),
		t.Subtitle.Render("Digital Evidence Management"),
		"",
		t.Greeting.Render("What's your name, Detective?"),
		"",
		s.input.View(),
		"",
		errLine,
		"",
		t.Help.Render("enter: start  •  esc: quit"),
	)
}
