package blood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/progress"
)

func newLab(t *testing.T) *Lab {
	t.Helper()
	cfg, err := config.DefaultLabs()
	require.NoError(t, err)
	return New(cfg.Blood)
}

func run(l *Lab, n int) (solvedAt int) {
	solvedAt = -1
	for i := 0; i < n; i++ {
		if l.Step(core.NewInputFrame()).JustSolved && solvedAt < 0 {
			solvedAt = i
		}
	}
	return solvedAt
}

// ticks returns the number of 30 Hz ticks covering ms milliseconds.
func ticks(ms int) int {
	return ms*30/1000 + 1
}

func TestLuminolNeedsDarkRoom(t *testing.T) {
	l := newLab(t)

	l.Select("LUMINOL")
	require.False(t, l.AddReagent(), "LUMINOL must be rejected with the lights on")
	run(l, ticks(1200))
	require.False(t, l.Tested("LUMINOL"), "LUMINOL completed with the lights on")

	l.ToggleDark()
	require.True(t, l.Dark())
	require.True(t, l.AddReagent(), "LUMINOL should be accepted in the dark")
	run(l, ticks(1200))
	assert.True(t, l.Tested("LUMINOL"), "LUMINOL not completed after the drop")
}

func TestKastleTurnsLightsOn(t *testing.T) {
	l := newLab(t)

	l.Select("LUMINOL")
	l.ToggleDark()
	l.Select("KASTLE")
	assert.False(t, l.Dark(), "choosing K-Meyer should switch the lights back on")

	// the switch only exists for the luminol test
	l.ToggleDark()
	assert.False(t, l.Dark(), "ToggleDark should do nothing while K-Meyer is selected")
}

func TestDropLocksControls(t *testing.T) {
	l := newLab(t)

	l.Select("KASTLE")
	require.True(t, l.AddReagent())
	require.True(t, l.Dropping(), "drop should be falling")

	assert.False(t, l.AddReagent(), "second drop accepted while the first is falling")
	l.Step(core.FrameOf(core.ActionRight))
	l.Select("LUMINOL")
	assert.Equal(t, "KASTLE", l.reagentID(), "selection changed during the drop")

	assert.False(t, l.Tested("KASTLE"), "test completed before the drop landed")
	run(l, ticks(1200))
	assert.False(t, l.Dropping())
	assert.True(t, l.Tested("KASTLE"), "K-Meyer test should be positive after 1200ms")
}

func TestBothTestsSolveThenExit(t *testing.T) {
	for _, order := range [][]string{{"KASTLE", "LUMINOL"}, {"LUMINOL", "KASTLE"}} {
		l := newLab(t)
		for _, id := range order {
			l.Select(id)
			if id == "LUMINOL" && !l.Dark() {
				l.ToggleDark()
			}
			// a duplicate test is harmless
			for rep := 0; rep < 2; rep++ {
				if l.Phase() == progress.PhaseActive {
					l.AddReagent()
					run(l, ticks(1200))
				}
			}
		}

		require.Equal(t, progress.PhaseAllComplete, l.Phase(), "order %v", order)

		solvedAt := run(l, ticks(800))
		require.GreaterOrEqual(t, solvedAt, 0, "%v: lab not solved 800ms after both tests", order)
		require.True(t, l.State().Solved)
		assert.GreaterOrEqual(t, solvedAt, 23, "%v: solved before 800ms", order)

		run(l, ticks(2200)-1)
		assert.False(t, l.State().Exit, "%v: exited before 3s", order)
		run(l, 2)
		assert.True(t, l.State().Exit, "%v: lab should exit 3s after completion", order)
		assert.Equal(t, 2, l.ArmedTimers(), "order %v", order)
	}
}

func TestCloseStopsDrop(t *testing.T) {
	l := newLab(t)
	l.Select("KASTLE")
	l.AddReagent()
	l.Close()

	run(l, ticks(1200))
	assert.False(t, l.Tested("KASTLE"), "drop landed after Close")
}

func TestRender(t *testing.T) {
	l := newLab(t)
	c := core.NewCanvas(80, 24)
	l.Select("LUMINOL")
	l.Render(c)

	out := c.String()
	for _, want := range []string{"BLOOD LAB", "K-Meyer", "Luminol", "LIGHTS: ON", "UNKNOWN SAMPLE"} {
		assert.Contains(t, out, want)
	}
}

func (l *Lab) reagentID() string {
	r, _ := l.reagent()
	return r.ID
}
