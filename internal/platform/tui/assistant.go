package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forenzy/internal/assistant"
)

// assistantReplyMsg carries the outcome of one Ask back to the UI loop.
type assistantReplyMsg struct {
	reply assistant.Reply
	err   error
}

// assistantScreen is the Junior Lab AI chat. Only the latest reply is shown.
type assistantScreen struct {
	nav
	ctx     context.Context
	env     Env
	ask     *assistant.Assistant
	input   textinput.Model
	spinner spinner.Model

	pending bool
	reply   assistant.Reply
	width   int
}

func newAssistantScreen(ctx context.Context, env Env, ask *assistant.Assistant) *assistantScreen {
	ti := textinput.New()
	ti.Placeholder = "Why do fingerprints have loops?"
	ti.Prompt = "🧪 "
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &assistantScreen{
		ctx:     ctx,
		env:     env,
		ask:     ask,
		input:   ti,
		spinner: sp,
		pending: ask.Pending(),
		reply:   ask.Last(),
	}
}

func (s *assistantScreen) Init() tea.Cmd {
	if s.pending {
		return tea.Batch(textinput.Blink, s.spinner.Tick)
	}
	return textinput.Blink
}

func (s *assistantScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.input.Width = min(max(msg.Width-20, 20), 60)
		return nil

	case assistantReplyMsg:
		if msg.err != nil {
			// rejected before any request was made; nothing changes
			s.pending = s.ask.Pending()
			return nil
		}
		s.pending = false
		s.reply = msg.reply
		return nil

	case spinner.TickMsg:
		if !s.pending {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			s.back()
			return nil
		case tea.KeyEnter:
			return s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// send starts a request unless the input is blank or one is in flight.
// The text goes out as typed.
func (s *assistantScreen) send() tea.Cmd {
	query := s.input.Value()
	if strings.TrimSpace(query) == "" || s.pending || s.ask.Pending() {
		return nil
	}

	s.pending = true
	s.input.Reset()

	ctx, ask := s.ctx, s.ask
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		reply, err := ask.Ask(ctx, query)
		return assistantReplyMsg{reply: reply, err: err}
	})
}

func (s *assistantScreen) View() string {
	t := s.env.theme
	width := 60
	if s.width > 0 {
		width = min(max(s.width-8, 24), 70)
	}

	var convo string
	switch {
	case s.pending:
		convo = s.spinner.View() + " " + t.Muted.Render("Mixing chemicals...")
	case s.reply.Query != "":
		text := lipgloss.NewStyle().Width(width - 6).Render(s.reply.Text)
		convo = t.Card.Width(width).Render(
			t.Muted.Render("You: "+s.reply.Query) + "\n\n" + t.Reply.Render(text),
		)
	default:
		convo = t.Muted.Render("Ask me a science secret! 🔍")
	}

	hint := "enter: send  •  esc: back"
	if s.pending {
		hint = "waiting for the lab...  •  esc: back"
	}

	return page(s.width,
		t.Title.Render("Junior Lab AI 🤖"),
		t.Subtitle.Render("Your lab assistant for science questions"),
		"",
		convo,
		"",
		s.input.View(),
		"",
		t.Help.Render(hint),
	)
}
