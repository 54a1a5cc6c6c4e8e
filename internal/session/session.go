// Package session holds the player's identity for one play-through.
//
// A Session is built once, when the player submits their name on the start
// screen, and is passed by value to every screen after that. It has no
// setters: the single-writer rule is enforced by construction.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyName is returned when the submitted name is blank.
var ErrEmptyName = errors.New("session: name is empty")

// Session is the immutable identity of the current player.
type Session struct {
	id   string
	name string
}

// New builds a session for the given display name.
// Surrounding whitespace is trimmed; the name is otherwise kept as entered.
func New(name string) (Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Session{}, ErrEmptyName
	}
	return Session{
		id:   uuid.NewString(),
		name: name,
	}, nil
}

// ID returns the unique id of this play-through.
func (s Session) ID() string {
	return s.id
}

// Name returns the player's display name.
func (s Session) Name() string {
	return s.name
}

// Valid reports whether the session was built by New.
func (s Session) Valid() bool {
	return s.name != ""
}

// Greeting is the menu headline.
func (s Session) Greeting() string {
	return fmt.Sprintf("Hi, %s!", s.name)
}

// DetectiveLine is the name line shown on the results badge.
func (s Session) DetectiveLine() string {
	return "Detective " + s.name
}
