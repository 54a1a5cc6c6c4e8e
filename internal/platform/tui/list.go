package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listItem is one selectable row of a menu screen.
type listItem struct {
	Title       string
	Description string
	Done        bool // rendered with a check mark
	Route       Route
}

// listMenu is the cursor list shared by the menu screens.
type listMenu struct {
	items  []listItem
	cursor int
	keys   *KeyMapper
}

func newListMenu(items []listItem) listMenu {
	return listMenu{items: items, keys: NewKeyMapper()}
}

// handleKey moves the cursor and reports the resulting menu action.
func (l *listMenu) handleKey(msg tea.KeyMsg) MenuAction {
	action := l.keys.MapKeyToMenuAction(msg)
	switch action {
	case MenuActionUp:
		if l.cursor > 0 {
			l.cursor--
		}
	case MenuActionDown:
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
	}
	return action
}

func (l *listMenu) selected() (listItem, bool) {
	if len(l.items) == 0 {
		return listItem{}, false
	}
	return l.items[l.cursor], true
}

func (l listMenu) view(t Theme) string {
	var b strings.Builder
	for i, item := range l.items {
		cursor := "  "
		style := t.ItemNormal
		if i == l.cursor {
			cursor = "> "
			style = t.ItemActive
		}

		line := cursor + item.Title
		if item.Done {
			line += " " + t.Check.Render("✓")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString(t.ItemDescription.Render("    " + item.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// updateMenuKey applies the common list behavior: select opens the item's
// route, back pops, quit exits.
func updateMenuKey(n *nav, l *listMenu, msg tea.KeyMsg) {
	switch l.handleKey(msg) {
	case MenuActionSelect:
		if item, ok := l.selected(); ok {
			n.goTo(item.Route)
		}
	case MenuActionBack:
		n.back()
	case MenuActionQuit:
		n.quit()
	}
}

// page stacks blocks and centers them within width.
func page(width int, blocks ...string) string {
	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	if width <= 0 {
		return "\n" + body
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// helpView renders the short help line for keys.
func helpView(t Theme, h help.Model, keys help.KeyMap) string {
	return t.Help.Render(h.View(keys))
}
