// Package fingerprint implements the pattern academy lab.
// The player pages through three flashcards (loop, whorl, arch) and then
// names the pattern of each print in a short quiz.
package fingerprint

import (
	"fmt"
	"time"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/progress"
	"github.com/vovakirdan/forenzy/internal/registry"
)

// Answers offered for every quiz question, in display order.
var Answers = []string{"LOOP", "WHORL", "ARCH"}

// Feedback is the state of the answer overlay.
type Feedback int

const (
	FeedbackIdle Feedback = iota
	FeedbackWrong
	FeedbackCorrect
)

// Lab implements the fingerprint lab.
type Lab struct {
	cfg config.FingerprintConfig
	rt  core.RuntimeConfig
	m   *progress.Machine

	card     int // flashcard index during the briefing
	question int // current quiz question
	cursor   int // highlighted answer

	feedback      Feedback
	feedbackTimer progress.Countdown
}

// New creates a fingerprint lab from its content.
func New(cfg config.FingerprintConfig) *Lab {
	l := &Lab{cfg: cfg}
	l.Reset(core.DefaultConfig())
	return l
}

// ID returns the unique identifier for this lab.
func (l *Lab) ID() string {
	return "fingerprint"
}

// Title returns the lab heading.
func (l *Lab) Title() string {
	return l.cfg.Title
}

// Reset starts the lab over at the first flashcard.
func (l *Lab) Reset(cfg core.RuntimeConfig) {
	if l.m != nil {
		l.m.Close()
	}
	l.rt = cfg
	l.m = progress.MustNew(l.cfg.Timing.Progress(targets(len(l.cfg.Quiz)), true))
	l.card = 0
	l.question = 0
	l.cursor = 0
	l.feedback = FeedbackIdle
	l.feedbackTimer.Stop()
}

// targets returns one target id per quiz question: q1, q2, ...
func targets(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("q%d", i+1)
	}
	return ids
}

// Step advances the lab by one tick.
func (l *Lab) Step(in core.InputFrame) core.StepResult {
	before := l.m.Phase()
	wasSolved := l.m.Solved()

	switch l.m.Phase() {
	case progress.PhaseBriefing:
		switch {
		case in.Has(core.ActionLeft):
			l.PrevCard()
		case in.Has(core.ActionRight):
			l.NextCard()
		case in.Has(core.ActionConfirm):
			if l.card == len(l.cfg.Cards)-1 {
				l.StartQuiz()
			} else {
				l.NextCard()
			}
		}
	case progress.PhaseActive:
		switch {
		case in.Has(core.ActionUp):
			l.cursor = core.Wrap(l.cursor-1, len(Answers))
		case in.Has(core.ActionDown):
			l.cursor = core.Wrap(l.cursor+1, len(Answers))
		case in.Has(core.ActionConfirm):
			l.Answer(Answers[l.cursor])
		}
	case progress.PhaseSolved:
		if in.Has(core.ActionConfirm) {
			l.m.Exit()
		}
	}

	// a timer armed by this tick's input starts counting on the next one
	if l.m.Phase() == before {
		l.advance(l.rt.TickInterval())
	}
	return core.StepResult{
		State:      l.State(),
		JustSolved: !wasSolved && l.m.Solved(),
	}
}

// advance moves the feedback timer and the machine forward by dt.
func (l *Lab) advance(dt time.Duration) {
	if l.feedbackTimer.Advance(dt) {
		if l.feedback == FeedbackCorrect && l.m.Phase() == progress.PhaseActive {
			l.question++
		}
		if l.m.Phase() == progress.PhaseActive {
			l.feedback = FeedbackIdle
		}
	}
	l.m.Advance(dt)
}

// PrevCard shows the previous flashcard.
func (l *Lab) PrevCard() {
	if l.card > 0 {
		l.card--
	}
}

// NextCard shows the next flashcard.
func (l *Lab) NextCard() {
	if l.card < len(l.cfg.Cards)-1 {
		l.card++
	}
}

// StartQuiz leaves the flashcards.
func (l *Lab) StartQuiz() {
	l.m.Begin()
}

// Answer submits pattern for the current question and reports whether it
// was right. Answers are ignored while feedback is showing.
func (l *Lab) Answer(pattern string) bool {
	if l.feedback != FeedbackIdle || l.m.Phase() != progress.PhaseActive {
		return false
	}

	if pattern != l.cfg.Quiz[l.question] {
		l.feedback = FeedbackWrong
		l.feedbackTimer.Start(ms(l.cfg.WrongFeedbackMS))
		return false
	}

	l.feedback = FeedbackCorrect
	_, ev := l.m.Mark(fmt.Sprintf("q%d", l.question+1))
	if ev == progress.EventNone {
		// more questions left; the machine's solve delay covers the last one
		l.feedbackTimer.Start(ms(l.cfg.CorrectFeedbackMS))
	}
	return true
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Question returns the zero-based index of the current question.
func (l *Lab) Question() int {
	return l.question
}

// Feedback returns the current answer feedback.
func (l *Lab) Feedback() Feedback {
	return l.feedback
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

// Close cancels pending timers.
func (l *Lab) Close() {
	l.feedbackTimer.Stop()
	l.m.Close()
}

// Render draws the lab.
func (l *Lab) Render(dst *core.Canvas) {
	w := dst.Width()
	dst.DrawTextCentered(0, l.cfg.Title, core.ColorSky)
	dst.DrawHLine(0, 1, w, '─', core.ColorGray)

	switch l.m.Phase() {
	case progress.PhaseBriefing:
		l.renderCards(dst)
	case progress.PhaseActive, progress.PhaseAllComplete:
		l.renderQuiz(dst)
	default:
		l.renderSuccess(dst)
	}
}

func (l *Lab) renderCards(dst *core.Canvas) {
	w := dst.Width()
	dst.DrawTextCentered(3, "STEP 1: MEMORIZE THE SHAPES", core.ColorSky)
	if len(l.cfg.Cards) == 0 {
		return
	}

	card := l.cfg.Cards[l.card]
	box := core.NewRect(w/2-20, 5, 40, 14)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawArt(w/2-8, 6, card.Art, patternColor(card.Pattern))
	dst.DrawTextCentered(13, card.Title, core.ColorWhite)
	dst.DrawWrapped(box.X+2, 15, box.W-4, card.Description, core.ColorGray)

	nav := fmt.Sprintf("◀  %d / %d  ▶", l.card+1, len(l.cfg.Cards))
	dst.DrawTextCentered(20, nav, core.ColorGray)
	if l.card == len(l.cfg.Cards)-1 {
		dst.DrawTextCentered(22, "[ START QUIZ ]", core.ColorSky)
	} else {
		dst.DrawTextCentered(22, "←/→ flip cards   enter next", core.ColorDim)
	}
}

func (l *Lab) renderQuiz(dst *core.Canvas) {
	w := dst.Width()
	dst.DrawTextCentered(3, "STEP 2: IDENTIFY THE PRINT", core.ColorSky)
	q := core.Min(l.question, len(l.cfg.Quiz)-1)
	dst.DrawTextCentered(4, fmt.Sprintf("PRINT %d OF %d", q+1, len(l.cfg.Quiz)), core.ColorGray)

	frame := core.ColorWhite
	switch l.feedback {
	case FeedbackWrong:
		frame = core.ColorRed
	case FeedbackCorrect:
		frame = core.ColorGreen
	}
	box := core.NewRect(w/2-11, 6, 22, 9)
	dst.DrawBox(box, frame)

	switch l.feedback {
	case FeedbackWrong:
		dst.DrawTextCentered(10, "WRONG PATTERN", core.ColorRed)
	case FeedbackCorrect:
		dst.DrawTextCentered(10, "MATCH FOUND!", core.ColorGreen)
	default:
		if card, ok := l.cfg.Card(l.cfg.Quiz[q]); ok {
			dst.DrawArt(w/2-8, 7, card.Art, core.ColorGray)
		}
	}

	for i, a := range Answers {
		col := core.ColorGray
		label := "  " + a + "  "
		if i == l.cursor {
			col = core.ColorWhite
			label = "> " + a + " <"
		}
		if l.feedback != FeedbackIdle {
			col = core.ColorDim
		}
		dst.DrawTextCentered(17+i*2, label, col)
	}
}

func (l *Lab) renderSuccess(dst *core.Canvas) {
	dst.DrawTextCentered(8, "CERTIFIED DETECTIVE", core.ColorYellow)
	dst.DrawTextCentered(10, "You identified all patterns correctly!", core.ColorGray)
	dst.DrawTextCentered(14, "[ LOG EVIDENCE ]", core.ColorYellow)
}

func patternColor(pattern string) core.Color {
	switch pattern {
	case "LOOP":
		return core.ColorSky
	case "WHORL":
		return core.ColorPurple
	case "ARCH":
		return core.ColorYellow
	default:
		return core.ColorWhite
	}
}

func init() {
	registry.Register(registry.LabInfo{ID: "fingerprint", Title: "Fingerprint", Order: 4}, func(cfg config.LabsConfig) registry.Lab {
		return New(cfg.Fingerprint)
	})
}
