// Package bones implements the skull growth lab.
// The player scans the three open sutures of an infant skull; once all are
// found the skull ages and the gaps are shown fused.
package bones

import (
	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/progress"
	"github.com/vovakirdan/forenzy/internal/registry"
)

var skullArt = []string{
	"      .-~~~~~~~~-.      ",
	"    .'            '.    ",
	"   /                \\   ",
	"  |                  |  ",
	"  |                  |  ",
	"  |   .--.    .--.   |  ",
	"  |  (    )  (    )  |  ",
	"   \\  '--'    '--'  /   ",
	"    |      /\\      |    ",
	"     \\   ______   /     ",
	"      '-.|||||||.-'     ",
}

// Lab implements the bones lab.
type Lab struct {
	cfg    config.BonesConfig
	rt     core.RuntimeConfig
	m      *progress.Machine
	cursor int
}

// New creates a bones lab from its content.
func New(cfg config.BonesConfig) *Lab {
	l := &Lab{cfg: cfg}
	l.Reset(core.DefaultConfig())
	return l
}

// ID returns the unique identifier for this lab.
func (l *Lab) ID() string {
	return "bones"
}

// Title returns the lab heading.
func (l *Lab) Title() string {
	return l.cfg.Title
}

// Reset shows the suture briefing again.
func (l *Lab) Reset(cfg core.RuntimeConfig) {
	if l.m != nil {
		l.m.Close()
	}
	l.rt = cfg
	ids := make([]string, len(l.cfg.Sutures))
	for i, s := range l.cfg.Sutures {
		ids[i] = s.ID
	}
	l.m = progress.MustNew(l.cfg.Timing.Progress(ids, true))
	l.cursor = 0
}

// Step advances the lab by one tick.
func (l *Lab) Step(in core.InputFrame) core.StepResult {
	before := l.m.Phase()
	wasSolved := l.m.Solved()

	switch l.m.Phase() {
	case progress.PhaseBriefing:
		if in.Has(core.ActionConfirm) {
			l.m.Begin()
		}
	case progress.PhaseActive:
		n := len(l.cfg.Sutures)
		switch {
		case in.Has(core.ActionUp), in.Has(core.ActionLeft):
			l.cursor = core.Wrap(l.cursor-1, n)
		case in.Has(core.ActionDown), in.Has(core.ActionRight):
			l.cursor = core.Wrap(l.cursor+1, n)
		case in.Has(core.ActionConfirm):
			l.Scan(l.cfg.Sutures[l.cursor].ID)
		}
	case progress.PhaseSolved:
		if in.Has(core.ActionConfirm) {
			l.m.Exit()
		}
	}

	if l.m.Phase() == before {
		l.m.Advance(l.rt.TickInterval())
	}
	return core.StepResult{
		State:      l.State(),
		JustSolved: !wasSolved && l.m.Solved(),
	}
}

// Scan analyzes one suture. Scanning a suture twice does nothing.
func (l *Lab) Scan(id string) progress.MarkResult {
	res, _ := l.m.Mark(id)
	return res
}

// Begin closes the briefing.
func (l *Lab) Begin() {
	l.m.Begin()
}

// Adult reports whether the skull shows the fused adult sutures.
func (l *Lab) Adult() bool {
	return l.m.Solved()
}

// Phase returns the machine phase.
func (l *Lab) Phase() progress.Phase {
	return l.m.Phase()
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

// Close cancels the growth timer.
func (l *Lab) Close() {
	l.m.Close()
}

// Render draws the lab.
func (l *Lab) Render(dst *core.Canvas) {
	w := dst.Width()
	dst.DrawTextCentered(0, l.cfg.Title, core.ColorWhite)
	dst.DrawHLine(0, 1, w, '─', core.ColorGray)

	if l.m.Phase() == progress.PhaseBriefing {
		box := core.NewRect(w/2-24, 3, 48, 14)
		dst.DrawBox(box, core.ColorSky)
		dst.DrawTextCentered(4, "SUTURE DIAGRAM", core.ColorSky)
		for i, s := range l.cfg.Sutures {
			dst.DrawTextCentered(6+i, "· "+s.Label, core.ColorWhite)
		}
		dst.DrawWrapped(box.X+3, 11, box.W-6, l.cfg.Briefing, core.ColorGray)
		dst.DrawTextCentered(19, "[ START MISSION ]", core.ColorSky)
		return
	}

	adult := l.m.Solved()
	if adult {
		dst.DrawTextCentered(3, "OBSERVE ADULT FUSION", core.ColorWhite)
		dst.DrawTextCentered(4, "The gaps are gone. The bones have joined together!", core.ColorGray)
	} else {
		dst.DrawTextCentered(3, "SCAN INFANT GAPS", core.ColorWhite)
		dst.DrawTextCentered(4, "Pick each red marker and press enter to analyze it.", core.ColorGray)
	}

	skullX := w/2 - 12 - 10
	skullCol := core.ColorWhite
	if adult {
		skullCol = core.ColorGray
	}
	dst.DrawArt(skullX, 6, skullArt, skullCol)

	// markers sit on the skull's top, middle and back
	for i, s := range l.cfg.Sutures {
		y := 8 + i*2
		mx := skullX + 11
		if adult {
			dst.DrawHLine(mx-3, y, 7, '═', core.ColorGray)
		} else {
			mark, col := '✚', core.ColorRed
			if l.m.Completed(s.ID) {
				mark, col = '✓', core.ColorGreen
			}
			dst.SetColored(mx, y, mark, col)
		}

		label := "  " + s.Label
		col := core.ColorGray
		if !adult && i == l.cursor {
			label = "> " + s.Label
			col = core.ColorWhite
		}
		if l.m.Completed(s.ID) && !adult {
			label += "  scanned"
			col = core.ColorGreen
		}
		dst.DrawTextColored(skullX+30, y, label, col)
	}

	if adult {
		box := core.NewRect(w/2-26, 18, 52, 5)
		dst.DrawBox(box, core.ColorYellow)
		dst.DrawTextCentered(18, " GROWTH MATCHED ", core.ColorYellow)
		dst.DrawWrapped(box.X+2, 19, box.W-4, l.cfg.AdultNote, core.ColorWhite)
		dst.DrawTextCentered(23, "[ FINISH & LOG EVIDENCE ]", core.ColorYellow)
	}
}

func init() {
	registry.Register(registry.LabInfo{ID: "bones", Title: "Bones", Order: 3}, func(cfg config.LabsConfig) registry.Lab {
		return New(cfg.Bones)
	})
}
