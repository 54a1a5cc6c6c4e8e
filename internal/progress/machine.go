// Package progress implements the completion machine shared by every lab.
//
// A lab is a set of targets the player must act on. The machine records
// which targets are done, moves to AllComplete the moment the last one is
// marked, and then walks two one-shot timers: the solve delay (AllComplete →
// Solved) and the exit delay (Solved → Exited). Timers are countdowns owned
// by the machine and advanced by the platform's fixed tick, so nothing ever
// fires outside the update loop or after Close.
package progress

import (
	"fmt"
	"time"
)

// Phase is the lab's position in its lifecycle.
type Phase int

const (
	PhaseBriefing    Phase = iota // Intro shown before play starts
	PhaseActive                   // Player is working through the targets
	PhaseAllComplete              // Every target done, solve timer running
	PhaseSolved                   // Success shown, exit timer running (if any)
	PhaseExited                   // Lab asked the platform to navigate away
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBriefing:
		return "Briefing"
	case PhaseActive:
		return "Active"
	case PhaseAllComplete:
		return "AllComplete"
	case PhaseSolved:
		return "Solved"
	case PhaseExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// MarkResult reports what Mark did with a target.
type MarkResult int

const (
	MarkAccepted  MarkResult = iota // Target newly completed
	MarkDuplicate                   // Target was already complete
	MarkGated                       // Gate predicate is false, nothing changed
	MarkUnknown                     // Target is not part of this lab
	MarkInactive                    // Machine is not accepting marks
)

// String returns a human-readable name for the result.
func (r MarkResult) String() string {
	switch r {
	case MarkAccepted:
		return "Accepted"
	case MarkDuplicate:
		return "Duplicate"
	case MarkGated:
		return "Gated"
	case MarkUnknown:
		return "Unknown"
	case MarkInactive:
		return "Inactive"
	default:
		return "Invalid"
	}
}

// Gate is a precondition a target needs before it can be marked.
type Gate func() bool

// Config parameterizes a machine.
type Config struct {
	// Targets lists every target id the lab requires.
	Targets []string

	// Gates holds optional preconditions keyed by target id.
	Gates map[string]Gate

	// Briefing starts the machine in PhaseBriefing instead of PhaseActive.
	Briefing bool

	// SolveDelay is the pause between AllComplete and Solved.
	// Zero moves to Solved immediately.
	SolveDelay time.Duration

	// ExitDelay is the pause between Solved and Exited.
	// Zero disables the automatic exit.
	ExitDelay time.Duration
}

// Event is something the machine reports from Mark or Advance.
type Event int

const (
	EventNone Event = iota
	EventAllComplete
	EventSolved
	EventExited
)

// Machine tracks one lab instance. It is not safe for concurrent use; the
// platform drives it from a single update loop.
type Machine struct {
	cfg       Config
	required  map[string]bool
	completed map[string]bool
	phase     Phase
	closed    bool

	solveTimer Countdown
	exitTimer  Countdown
	armed      int
}

// New creates a machine for the given configuration.
// Duplicate target ids collapse into one.
func New(cfg Config) (*Machine, error) {
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("progress: lab needs at least one target")
	}
	if cfg.SolveDelay < 0 || cfg.ExitDelay < 0 {
		return nil, fmt.Errorf("progress: delays must not be negative")
	}

	required := make(map[string]bool, len(cfg.Targets))
	for _, id := range cfg.Targets {
		required[id] = true
	}
	for id := range cfg.Gates {
		if !required[id] {
			return nil, fmt.Errorf("progress: gate for unknown target %q", id)
		}
	}

	m := &Machine{
		cfg:       cfg,
		required:  required,
		completed: make(map[string]bool, len(required)),
		phase:     PhaseActive,
	}
	if cfg.Briefing {
		m.phase = PhaseBriefing
	}
	return m, nil
}

// MustNew is New for static lab definitions; it panics on a bad config.
func MustNew(cfg Config) *Machine {
	m, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Begin leaves the briefing. It is a no-op in any other phase.
func (m *Machine) Begin() {
	if m.closed || m.phase != PhaseBriefing {
		return
	}
	m.phase = PhaseActive
}

// Mark completes one target.
// Repeated marks, gated marks and marks outside PhaseActive change nothing.
// A completed target reports Duplicate in every later phase until Close.
func (m *Machine) Mark(target string) (MarkResult, Event) {
	if m.closed {
		return MarkInactive, EventNone
	}
	if !m.required[target] {
		return MarkUnknown, EventNone
	}
	if m.completed[target] {
		return MarkDuplicate, EventNone
	}
	if m.phase != PhaseActive {
		return MarkInactive, EventNone
	}
	if gate, ok := m.cfg.Gates[target]; ok && gate != nil && !gate() {
		return MarkGated, EventNone
	}

	m.completed[target] = true
	if len(m.completed) < len(m.required) {
		return MarkAccepted, EventNone
	}

	m.phase = PhaseAllComplete
	if m.cfg.SolveDelay == 0 {
		m.solve()
		return MarkAccepted, EventSolved
	}
	m.arm(&m.solveTimer, m.cfg.SolveDelay)
	return MarkAccepted, EventAllComplete
}

// CanMark reports whether target would currently be accepted.
func (m *Machine) CanMark(target string) bool {
	if m.closed || m.phase != PhaseActive || !m.required[target] || m.completed[target] {
		return false
	}
	gate, ok := m.cfg.Gates[target]
	return !ok || gate == nil || gate()
}

// Advance moves the running timer forward by dt and returns the event it
// produced, if any. At most one phase change happens per call.
func (m *Machine) Advance(dt time.Duration) Event {
	if m.closed {
		return EventNone
	}

	switch m.phase {
	case PhaseAllComplete:
		if m.solveTimer.Advance(dt) {
			m.solve()
			return EventSolved
		}
	case PhaseSolved:
		if m.exitTimer.Advance(dt) {
			m.phase = PhaseExited
			return EventExited
		}
	}
	return EventNone
}

// solve enters PhaseSolved and arms the exit timer when one is configured.
func (m *Machine) solve() {
	m.phase = PhaseSolved
	if m.cfg.ExitDelay > 0 {
		m.arm(&m.exitTimer, m.cfg.ExitDelay)
	}
}

// arm starts a timer once; a timer that has already been armed stays as is.
func (m *Machine) arm(c *Countdown, d time.Duration) {
	if c.Used() {
		return
	}
	c.Start(d)
	m.armed++
}

// Exit requests navigation from the solved phase, for labs whose exit is a
// button rather than a timer.
func (m *Machine) Exit() bool {
	if m.closed || m.phase != PhaseSolved {
		return false
	}
	m.exitTimer.Stop()
	m.phase = PhaseExited
	return true
}

// Close cancels pending timers. A closed machine ignores all further input.
func (m *Machine) Close() {
	m.solveTimer.Stop()
	m.exitTimer.Stop()
	m.closed = true
}

// Closed reports whether Close has been called.
func (m *Machine) Closed() bool {
	return m.closed
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Completed reports whether target has been marked.
func (m *Machine) Completed(target string) bool {
	return m.completed[target]
}

// CompletedCount returns how many distinct targets are done.
func (m *Machine) CompletedCount() int {
	return len(m.completed)
}

// Required returns the number of distinct targets.
func (m *Machine) Required() int {
	return len(m.required)
}

// Solved reports whether the machine has reached PhaseSolved or later.
func (m *Machine) Solved() bool {
	return m.phase == PhaseSolved || m.phase == PhaseExited
}

// ArmedTimers returns how many timers have been armed over the machine's life.
func (m *Machine) ArmedTimers() int {
	return m.armed
}

// Pending reports whether a timer is currently counting down.
func (m *Machine) Pending() bool {
	return m.solveTimer.Running() || m.exitTimer.Running()
}
