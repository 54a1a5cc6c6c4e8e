package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = time.Second / 30

func sutureConfig() Config {
	return Config{
		Targets:    []string{"coronal", "sagittal", "lambdoid"},
		Briefing:   true,
		SolveDelay: time.Second,
	}
}

// permutations returns every ordering of ids.
func permutations(ids []string) [][]string {
	if len(ids) <= 1 {
		return [][]string{append([]string(nil), ids...)}
	}
	var out [][]string
	for i := range ids {
		rest := make([]string, 0, len(ids)-1)
		rest = append(rest, ids[:i]...)
		rest = append(rest, ids[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{ids[i]}, p...))
		}
	}
	return out
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no targets", Config{}},
		{"negative delay", Config{Targets: []string{"a"}, SolveDelay: -time.Second}},
		{"gate for unknown target", Config{Targets: []string{"a"}, Gates: map[string]Gate{"b": func() bool { return true }}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBriefingBlocksMarks(t *testing.T) {
	m := MustNew(sutureConfig())

	require.Equal(t, PhaseBriefing, m.Phase())
	res, _ := m.Mark("coronal")
	assert.Equal(t, MarkInactive, res, "Mark during briefing")

	m.Begin()
	require.Equal(t, PhaseActive, m.Phase())
	res, _ = m.Mark("coronal")
	assert.Equal(t, MarkAccepted, res, "Mark after Begin")
}

func TestAnyOrderWithDuplicatesCompletesOnce(t *testing.T) {
	targets := []string{"coronal", "sagittal", "lambdoid"}

	for _, order := range permutations(targets) {
		// Interleave a duplicate tap after every mark
		var taps []string
		for _, id := range order {
			taps = append(taps, id, id)
		}

		m := MustNew(sutureConfig())
		m.Begin()

		allComplete := 0
		for _, id := range taps {
			_, ev := m.Mark(id)
			if ev == EventAllComplete {
				allComplete++
			}
		}

		assert.Equal(t, 1, allComplete, "order %v: AllComplete count", order)
		assert.Equal(t, PhaseAllComplete, m.Phase(), "order %v", order)
		assert.Equal(t, 1, m.ArmedTimers(), "order %v: armed timers", order)
		assert.Equal(t, 3, m.CompletedCount(), "order %v: completed", order)
	}
}

func TestDuplicateMarkIsIdempotent(t *testing.T) {
	m := MustNew(Config{Targets: []string{"a", "b"}, SolveDelay: time.Second})

	res, _ := m.Mark("a")
	require.Equal(t, MarkAccepted, res)
	for i := 0; i < 5; i++ {
		res, ev := m.Mark("a")
		assert.Equal(t, MarkDuplicate, res)
		assert.Equal(t, EventNone, ev)
	}
	assert.Equal(t, 1, m.CompletedCount())
	assert.Equal(t, 0, m.ArmedTimers())

	m.Mark("b")
	// Taps after completion are ignored and do not re-arm
	res, ev := m.Mark("b")
	assert.Equal(t, MarkDuplicate, res, "Mark after completion")
	assert.Equal(t, EventNone, ev)
	assert.Equal(t, 1, m.ArmedTimers())
}

func TestRepeatMarkAfterAllComplete(t *testing.T) {
	m := MustNew(Config{
		Targets:    []string{"a", "b"},
		SolveDelay: time.Second,
		ExitDelay:  time.Second,
	})
	m.Mark("a")
	_, ev := m.Mark("b")
	require.Equal(t, EventAllComplete, ev)

	for _, id := range []string{"a", "b"} {
		res, ev := m.Mark(id)
		assert.Equal(t, MarkDuplicate, res, "Mark(%s) after AllComplete", id)
		assert.Equal(t, EventNone, ev)
	}
	assert.Equal(t, 1, m.ArmedTimers())
	assert.Equal(t, 2, m.CompletedCount())

	// still Duplicate once solved
	require.Equal(t, EventSolved, m.Advance(time.Second))
	res, _ := m.Mark("a")
	assert.Equal(t, MarkDuplicate, res, "Mark after Solved")

	m.Close()
	res, _ = m.Mark("a")
	assert.Equal(t, MarkInactive, res, "Mark after Close")
}

func TestUnknownTarget(t *testing.T) {
	m := MustNew(Config{Targets: []string{"a"}})
	res, _ := m.Mark("zzz")
	assert.Equal(t, MarkUnknown, res)
	assert.Equal(t, 0, m.CompletedCount(), "unknown target should not be recorded")
}

func TestGateRejectsUntilOpen(t *testing.T) {
	dark := false
	m := MustNew(Config{
		Targets:    []string{"KASTLE", "LUMINOL"},
		Gates:      map[string]Gate{"LUMINOL": func() bool { return dark }},
		SolveDelay: 800 * time.Millisecond,
	})

	assert.False(t, m.CanMark("LUMINOL"), "lights on")
	res, ev := m.Mark("LUMINOL")
	assert.Equal(t, MarkGated, res)
	assert.Equal(t, EventNone, ev)
	assert.False(t, m.Completed("LUMINOL"))
	assert.Equal(t, 0, m.CompletedCount(), "gated mark must leave state unchanged")

	dark = true
	assert.True(t, m.CanMark("LUMINOL"), "dark room")
	res, _ = m.Mark("LUMINOL")
	assert.Equal(t, MarkAccepted, res)
	assert.True(t, m.Completed("LUMINOL"))
}

func TestTimersAdvancePhases(t *testing.T) {
	m := MustNew(Config{
		Targets:    []string{"KASTLE", "LUMINOL"},
		SolveDelay: 800 * time.Millisecond,
		ExitDelay:  2200 * time.Millisecond,
	})
	m.Mark("KASTLE")
	m.Mark("LUMINOL")

	var events []Event
	var elapsed time.Duration
	for i := 0; i < 200 && m.Phase() != PhaseExited; i++ {
		elapsed += tick
		if ev := m.Advance(tick); ev != EventNone {
			events = append(events, ev)
			if ev == EventSolved {
				assert.GreaterOrEqual(t, elapsed, 800*time.Millisecond, "solved too early")
			}
		}
	}

	require.Equal(t, []Event{EventSolved, EventExited}, events)
	assert.GreaterOrEqual(t, elapsed, 3*time.Second, "exited too early")
	assert.Equal(t, 2, m.ArmedTimers())
	assert.Equal(t, EventNone, m.Advance(time.Hour), "Advance after exit")
}

func TestZeroSolveDelaySolvesImmediately(t *testing.T) {
	m := MustNew(Config{Targets: []string{"impact-side"}, ExitDelay: 2500 * time.Millisecond})

	res, ev := m.Mark("impact-side")
	require.Equal(t, MarkAccepted, res)
	require.Equal(t, EventSolved, ev)
	assert.True(t, m.Solved())
	assert.Equal(t, 1, m.ArmedTimers(), "exit timer only")
}

func TestZeroExitDelayWaitsForManualExit(t *testing.T) {
	m := MustNew(Config{Targets: []string{"a"}, SolveDelay: 100 * time.Millisecond})
	m.Mark("a")
	m.Advance(time.Second)

	require.Equal(t, PhaseSolved, m.Phase())
	assert.Equal(t, EventNone, m.Advance(time.Hour), "no automatic exit expected")
	assert.False(t, m.Pending())

	assert.True(t, m.Exit(), "Exit from Solved")
	assert.Equal(t, PhaseExited, m.Phase())
	assert.False(t, m.Exit(), "second Exit")
}

func TestCloseCancelsPendingTimers(t *testing.T) {
	m := MustNew(Config{
		Targets:    []string{"a"},
		SolveDelay: 800 * time.Millisecond,
		ExitDelay:  time.Second,
	})
	m.Mark("a")
	require.True(t, m.Pending(), "solve timer should be pending")

	m.Close()

	assert.False(t, m.Pending(), "Close should stop timers")
	assert.Equal(t, EventNone, m.Advance(time.Hour))
	assert.Equal(t, PhaseAllComplete, m.Phase(), "closed machine must not move")
	res, _ := m.Mark("a")
	assert.Equal(t, MarkInactive, res, "Mark after Close")
}

func TestCountdown(t *testing.T) {
	var c Countdown
	assert.False(t, c.Advance(time.Second), "idle countdown should never fire")

	c.Start(100 * time.Millisecond)
	assert.False(t, c.Advance(50*time.Millisecond), "fired early")
	assert.True(t, c.Advance(50*time.Millisecond), "should fire when remaining reaches zero")
	assert.False(t, c.Advance(time.Second), "countdown must fire only once")
	assert.True(t, c.Used())
	assert.False(t, c.Running())
}
