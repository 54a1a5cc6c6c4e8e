// Package blood implements the blood lab: two reagent tests on a sample,
// one of which only works with the lights off.
package blood

import (
	"time"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/progress"
	"github.com/vovakirdan/forenzy/internal/registry"
)

// Lab implements the blood lab.
type Lab struct {
	cfg config.BloodConfig
	rt  core.RuntimeConfig
	m   *progress.Machine

	selected int // index into cfg.Reagents, -1 before the first pick
	dark     bool

	dropping string // reagent in the dropper, "" when idle
	drop     progress.Countdown
}

// New creates a blood lab from its content.
func New(cfg config.BloodConfig) *Lab {
	l := &Lab{cfg: cfg}
	l.Reset(core.DefaultConfig())
	return l
}

// ID returns the unique identifier for this lab.
func (l *Lab) ID() string {
	return "blood"
}

// Title returns the lab heading.
func (l *Lab) Title() string {
	return l.cfg.Title
}

// Reset starts the lab over with the lights on and no reagent chosen.
func (l *Lab) Reset(cfg core.RuntimeConfig) {
	if l.m != nil {
		l.m.Close()
	}
	l.rt = cfg

	ids := make([]string, len(l.cfg.Reagents))
	pc := l.cfg.Timing.Progress(nil, false)
	pc.Gates = make(map[string]progress.Gate)
	for i, r := range l.cfg.Reagents {
		ids[i] = r.ID
		if r.NeedDark {
			pc.Gates[r.ID] = l.isDark
		}
	}
	pc.Targets = ids
	l.m = progress.MustNew(pc)

	l.selected = -1
	l.dark = false
	l.dropping = ""
	l.drop.Stop()
}

func (l *Lab) isDark() bool {
	return l.dark
}

// Step advances the lab by one tick.
func (l *Lab) Step(in core.InputFrame) core.StepResult {
	if l.m.Phase() == progress.PhaseActive && l.dropping == "" {
		switch {
		case in.Has(core.ActionLeft):
			l.Select(l.cfg.Reagents[core.Wrap(l.selected-1, len(l.cfg.Reagents))].ID)
		case in.Has(core.ActionRight):
			l.Select(l.cfg.Reagents[core.Wrap(l.selected+1, len(l.cfg.Reagents))].ID)
		case in.Has(core.ActionToggle):
			l.ToggleDark()
		case in.Has(core.ActionConfirm):
			l.AddReagent()
		}
	}

	return l.advance(l.rt.TickInterval())
}

func (l *Lab) advance(dt time.Duration) core.StepResult {
	var ev progress.Event
	if l.drop.Advance(dt) {
		_, ev = l.m.Mark(l.dropping)
		l.dropping = ""
	}

	// a timer armed by this tick's mark starts counting on the next one
	if ev == progress.EventNone {
		ev = l.m.Advance(dt)
	}
	return core.StepResult{
		State:      l.State(),
		JustSolved: ev == progress.EventSolved,
	}
}

// Select picks a reagent. Reagents that work in the light switch the
// lights back on. Unknown ids and picks during a drop are ignored.
func (l *Lab) Select(id string) {
	if l.dropping != "" || l.m.Phase() != progress.PhaseActive {
		return
	}
	for i, r := range l.cfg.Reagents {
		if r.ID == id {
			l.selected = i
			if !r.NeedDark {
				l.dark = false
			}
			return
		}
	}
}

// ToggleDark flips the room lights. Only reagents that need the dark offer
// the switch.
func (l *Lab) ToggleDark() {
	r, ok := l.reagent()
	if !ok || !r.NeedDark || l.dropping != "" {
		return
	}
	l.dark = !l.dark
}

// AddReagent drops the selected reagent on the sample. It returns false when
// nothing happens: no reagent chosen, a drop already falling, or the
// reagent's dark-room requirement is not met.
func (l *Lab) AddReagent() bool {
	r, ok := l.reagent()
	if !ok || l.dropping != "" || l.m.Phase() != progress.PhaseActive {
		return false
	}
	if r.NeedDark && !l.dark {
		return false
	}
	l.dropping = r.ID
	l.drop.Start(time.Duration(l.cfg.DropMS) * time.Millisecond)
	return true
}

func (l *Lab) reagent() (config.Reagent, bool) {
	if l.selected < 0 || l.selected >= len(l.cfg.Reagents) {
		return config.Reagent{}, false
	}
	return l.cfg.Reagents[l.selected], true
}

// Dark reports whether the lights are off.
func (l *Lab) Dark() bool {
	return l.dark
}

// Dropping reports whether a reagent drop is falling.
func (l *Lab) Dropping() bool {
	return l.dropping != ""
}

// Tested reports whether the reagent's test has come back positive.
func (l *Lab) Tested(id string) bool {
	return l.m.Completed(id)
}

// Phase returns the machine phase.
func (l *Lab) Phase() progress.Phase {
	return l.m.Phase()
}

// ArmedTimers returns how many machine timers have been armed.
func (l *Lab) ArmedTimers() int {
	return l.m.ArmedTimers()
}

// State returns the lab's progress.
func (l *Lab) State() core.LabState {
	return core.LabState{
		Completed: l.m.CompletedCount(),
		Required:  l.m.Required(),
		Solved:    l.m.Solved(),
		Exit:      l.m.Phase() == progress.PhaseExited,
	}
}

// Close cancels the drop and the machine timers.
func (l *Lab) Close() {
	l.drop.Stop()
	l.dropping = ""
	l.m.Close()
}

// Render draws the lab.
func (l *Lab) Render(dst *core.Canvas) {
	w := dst.Width()
	titleCol := core.ColorRed
	if l.dark {
		titleCol = core.ColorDim
	}
	dst.DrawTextCentered(0, l.cfg.Title, titleCol)
	dst.DrawHLine(0, 1, w, '─', core.ColorGray)

	if l.m.Solved() {
		dst.DrawBox(core.NewRect(w/2-15, 8, 30, 7), core.ColorGreen)
		dst.DrawTextCentered(10, "SAMPLES MATCH", core.ColorGreen)
		dst.DrawTextCentered(12, "Both tests came back positive", core.ColorGray)
		return
	}

	// reagent picker
	x := w/2 - 12*len(l.cfg.Reagents)/2
	for i, r := range l.cfg.Reagents {
		col := core.ColorGray
		label := "  " + r.Label + "  "
		if i == l.selected {
			col = core.ColorWhite
			label = "[ " + r.Label + " ]"
		}
		if l.m.Completed(r.ID) {
			label += "✓"
			if i != l.selected {
				col = core.ColorGreen
			}
		}
		dst.DrawTextColored(x+i*14, 3, label, col)
	}

	r, ok := l.reagent()
	if ok && r.NeedDark {
		sw := "LIGHTS: ON   (t to switch off)"
		if l.dark {
			sw = "LIGHTS: OFF  (t to switch on)"
		}
		dst.DrawTextCentered(5, sw, core.ColorCyan)
	}

	l.renderBench(dst, r, ok)

	switch {
	case !ok:
		dst.DrawTextCentered(22, "←/→ choose a test", core.ColorDim)
	case l.dropping != "":
		dst.DrawTextCentered(22, "DROPPING...", core.ColorDim)
	case r.NeedDark && !l.dark:
		dst.DrawTextCentered(22, "Turn off the lights to use "+r.Label, core.ColorDim)
	default:
		dst.DrawTextCentered(22, "[ ADD "+r.ID+" ]", core.ColorWhite)
	}
}

func (l *Lab) renderBench(dst *core.Canvas, r config.Reagent, ok bool) {
	w := dst.Width()
	dish := core.NewRect(w/2-10, 15, 20, 5)
	dst.DrawBox(dish, core.ColorGray)

	// dropper, and the falling drop while a test runs
	dst.DrawTextCentered(7, "▼", core.ColorWhite)
	if l.dropping != "" {
		total := time.Duration(l.cfg.DropMS) * time.Millisecond
		y := 8
		if total > 0 {
			y = 8 + int(6*(total-l.drop.Remaining())/total)
		}
		dst.SetColored(w/2, core.Min(y, 14), '●', reagentColor(r.ID))
	}

	sample := core.ColorRed
	status := "UNKNOWN SAMPLE"
	if ok && l.m.Completed(r.ID) {
		sample = reagentColor(r.ID)
		status = "POSITIVE"
	} else if l.dark {
		sample = core.ColorDim
	}
	dst.DrawTextCentered(17, "≈≈≈≈≈≈", sample)
	dst.DrawTextCentered(20, status, core.ColorGray)
}

func reagentColor(id string) core.Color {
	if id == "LUMINOL" {
		return core.ColorCyan
	}
	return core.ColorPink
}

func init() {
	registry.Register(registry.LabInfo{ID: "blood", Title: "Bloodstains", Order: 2}, func(cfg config.LabsConfig) registry.Lab {
		return New(cfg.Blood)
	})
}
