package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles shared by the menu screens.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Greeting lipgloss.Style

	// List styles
	ItemNormal      lipgloss.Style
	ItemActive      lipgloss.Style
	ItemDescription lipgloss.Style
	Check           lipgloss.Style

	// Cards and badges
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Badge     lipgloss.Style
	Score     lipgloss.Style

	// Feedback
	Error lipgloss.Style
	Muted lipgloss.Style
	Reply lipgloss.Style
	Help  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Greeting: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		ItemNormal:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Check:           lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("117")).
			Padding(1, 2),
		CardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true).
			Padding(0, 1),
		Score: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),

		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Reply: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a theme without colors, for plain terminals.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:           plain.Bold(true),
		Subtitle:        plain,
		Greeting:        plain.Bold(true),
		ItemNormal:      plain,
		ItemActive:      plain.Bold(true).Underline(true),
		ItemDescription: plain,
		Check:           plain.Bold(true),
		Card:            plain.Border(lipgloss.NormalBorder()).Padding(1, 2),
		CardTitle:       plain.Bold(true),
		Badge:           plain.Bold(true).Reverse(true).Padding(0, 1),
		Score:           plain.Bold(true),
		Error:           plain.Bold(true),
		Muted:           plain.Italic(true),
		Reply:           plain,
		Help:            plain,
	}
}

// ThemeByName returns the named theme; unknown names get the default.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}
