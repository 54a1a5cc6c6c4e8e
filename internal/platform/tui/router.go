package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forenzy/internal/session"
)

// RouteName identifies a screen.
type RouteName string

const (
	RouteStart     RouteName = "start"
	RouteMenu      RouteName = "menu"
	RouteExplore   RouteName = "explore"
	RouteInfo      RouteName = "info"
	RouteEvidences RouteName = "evidences"
	RouteLab       RouteName = "lab"
	RouteExam      RouteName = "exam"
	RouteResults   RouteName = "results"
	RouteAssistant RouteName = "assistant"
	RouteCasebook  RouteName = "casebook"
)

// Route is a screen address. Param carries the lab or info card id,
// Score the exam score shown on the results screen.
type Route struct {
	Name  RouteName
	Param string
	Score int
}

// String renders the route as name or name:param.
func (r Route) String() string {
	switch {
	case r.Name == RouteResults:
		return fmt.Sprintf("%s:%d", r.Name, r.Score)
	case r.Param != "":
		return string(r.Name) + ":" + r.Param
	}
	return string(r.Name)
}

// ParseRoute parses the form produced by Route.String.
func ParseRoute(s string) Route {
	name, param, _ := strings.Cut(s, ":")
	r := Route{Name: RouteName(name)}
	if r.Name == RouteResults {
		fmt.Sscanf(param, "%d", &r.Score) //nolint:errcheck // zero score on bad input
		return r
	}
	r.Param = param
	return r
}

// Transition is a navigation request raised by a screen.
type Transition struct {
	To      Route
	Back    bool
	Quit    bool
	Session *session.Session // set by the start screen once a name is accepted
}

// Screen is one page of the app. Screens are mutated in place; the app
// polls Next after every update to learn where to go.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Next() (Transition, bool)
}

// closer is implemented by screens that own timers or goroutines.
type closer interface {
	Close()
}

// nav stores a pending transition. Screens embed it.
type nav struct {
	next *Transition
}

func (n *nav) goTo(r Route) {
	n.next = &Transition{To: r}
}

func (n *nav) back() {
	n.next = &Transition{Back: true}
}

func (n *nav) quit() {
	n.next = &Transition{Quit: true}
}

// Next returns and clears the pending transition.
func (n *nav) Next() (Transition, bool) {
	if n.next == nil {
		return Transition{}, false
	}
	t := *n.next
	n.next = nil
	return t, true
}
