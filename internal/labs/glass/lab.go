// Package glass implements the glass fracture lab: a three-page walkthrough
// of fracture patterns followed by a field test on which side was hit.
package glass

import (
	"fmt"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/progress"
	"github.com/vovakirdan/forenzy/internal/registry"
)

// Target is the single fact the field test asks for.
const Target = "impact-side"

var paneArt = []string{
	`\    |    /`,
	` \ .-+-. / `,
	`--( -*- )--`,
	` / '-+-' \ `,
	`/    |    \`,
}

// Lab implements the glass lab.
type Lab struct {
	cfg config.GlassConfig
	rt  core.RuntimeConfig
	m   *progress.Machine

	page     int
	cursor   int
	selected int // last picked option, -1 before any pick
}

// New creates a glass lab from its content.
func New(cfg config.GlassConfig) *Lab {
	l := &Lab{cfg: cfg}
	l.Reset(core.DefaultConfig())
	return l
}

// ID returns the unique identifier for this lab.
func (l *Lab) ID() string {
	return "glass"
}

// Title returns the lab heading.
func (l *Lab) Title() string {
	return l.cfg.Title
}

// Reset returns to the first walkthrough page.
func (l *Lab) Reset(cfg core.RuntimeConfig) {
	if l.m != nil {
		l.m.Close()
	}
	l.rt = cfg
	l.m = progress.MustNew(l.cfg.Timing.Progress([]string{Target}, len(l.cfg.Pages) > 0))
	l.page = 0
	l.cursor = 0
	l.selected = -1
}

// Step advances the lab by one tick.
func (l *Lab) Step(in core.InputFrame) core.StepResult {
	before := l.m.Phase()
	wasSolved := l.m.Solved()

	switch l.m.Phase() {
	case progress.PhaseBriefing:
		switch {
		case in.Has(core.ActionLeft):
			if l.page > 0 {
				l.page--
			}
		case in.Has(core.ActionRight), in.Has(core.ActionConfirm):
			l.NextPage()
		}
	case progress.PhaseActive:
		n := len(l.cfg.Options)
		switch {
		case in.Has(core.ActionUp):
			l.cursor = core.Wrap(l.cursor-1, n)
		case in.Has(core.ActionDown):
			l.cursor = core.Wrap(l.cursor+1, n)
		case in.Has(core.ActionConfirm):
			l.Choose(l.cursor)
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

// NextPage turns the walkthrough; the last page starts the field test.
func (l *Lab) NextPage() {
	if l.m.Phase() != progress.PhaseBriefing {
		return
	}
	if l.page < len(l.cfg.Pages)-1 {
		l.page++
		return
	}
	l.m.Begin()
}

// Choose answers the field test with option i and reports whether it was
// correct. A wrong pick shows its reason and leaves the test open.
func (l *Lab) Choose(i int) bool {
	if l.m.Phase() != progress.PhaseActive || i < 0 || i >= len(l.cfg.Options) {
		return false
	}
	l.selected = i
	if !l.cfg.Options[i].Correct {
		return false
	}
	l.m.Mark(Target)
	return true
}

// Reason returns the explanation for the last pick, or "".
func (l *Lab) Reason() string {
	if l.selected < 0 {
		return ""
	}
	return l.cfg.Options[l.selected].Reason
}

// Page returns the walkthrough page being shown.
func (l *Lab) Page() int {
	return l.page
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

// Close cancels the return-to-board timer.
func (l *Lab) Close() {
	l.m.Close()
}

// Render draws the lab.
func (l *Lab) Render(dst *core.Canvas) {
	w := dst.Width()
	dst.DrawTextCentered(0, l.cfg.Title, core.ColorSky)
	dst.DrawHLine(0, 1, w, '─', core.ColorGray)

	if l.m.Phase() == progress.PhaseBriefing {
		l.renderPage(dst)
		return
	}

	dst.DrawTextCentered(3, "FIELD TEST: SIDE VIEW SCAN", core.ColorRed)
	dst.DrawTextColored(w/2-16, 5, "SIDE A", core.ColorWhite)
	dst.DrawTextColored(w/2+11, 5, "SIDE B", core.ColorWhite)
	for y := 6; y < 9; y++ {
		dst.DrawTextColored(w/2-6, y, "▕", core.ColorCyan)
		dst.DrawTextColored(w/2+5, y, "┘└", core.ColorRed)
	}
	dst.DrawWrapped(4, 10, w-8, l.cfg.Question, core.ColorGray)

	for i, o := range l.cfg.Options {
		label := fmt.Sprintf("  %d. %s", i+1, o.Text)
		col := core.ColorGray
		if i == l.cursor {
			label = fmt.Sprintf("> %d. %s", i+1, o.Text)
			col = core.ColorWhite
		}
		if i == l.selected {
			if o.Correct {
				col = core.ColorGreen
			} else {
				col = core.ColorRed
			}
		}
		dst.DrawTextColored(6, 13+i, label, col)
	}

	if l.m.Solved() {
		dst.DrawBox(core.NewRect(w/2-14, 18, 28, 3), core.ColorGreen)
		dst.DrawTextCentered(19, "EVIDENCE SECURED", core.ColorGreen)
		dst.DrawWrapped(4, 21, w-8, l.Reason(), core.ColorGray)
		return
	}
	if l.selected >= 0 {
		dst.DrawTextColored(4, 18, "ANALYSIS ERROR", core.ColorRed)
		dst.DrawWrapped(4, 19, w-8, l.Reason(), core.ColorWhite)
	}
}

func (l *Lab) renderPage(dst *core.Canvas) {
	w := dst.Width()
	p := l.cfg.Pages[l.page]
	dst.DrawTextCentered(3, p.Heading, core.ColorYellow)

	y := 5
	if l.page == 0 {
		dst.DrawArt(w/2-5, y, paneArt, core.ColorCyan)
		y += len(paneArt) + 1
	}
	for _, line := range p.Body {
		y += dst.DrawWrapped(6, y, w-12, line, core.ColorWhite) + 1
	}

	dst.DrawTextCentered(20, fmt.Sprintf("%d / %d", l.page+1, len(l.cfg.Pages)), core.ColorGray)
	next := "[ NEXT ]"
	switch {
	case l.page == len(l.cfg.Pages)-1:
		next = "[ START FIELD TEST ]"
	case l.page == 0:
		next = "[ IDENTIFY PATTERNS ]"
	case l.page == 1:
		next = "[ VIEW IMPACT ANALYSIS ]"
	}
	dst.DrawTextCentered(22, next, core.ColorSky)
}

func init() {
	registry.Register(registry.LabInfo{ID: "glass", Title: "Glass", Order: 1}, func(cfg config.LabsConfig) registry.Lab {
		return New(cfg.Glass)
	})
}
