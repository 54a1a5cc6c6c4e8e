// Package config provides YAML-based lab content loading, the exam question
// bank and the assistant's environment settings.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/forenzy/internal/progress"
)

// LabsConfig contains the content and timings of every lab plus the
// learning-lab info cards.
type LabsConfig struct {
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Blood       BloodConfig       `yaml:"blood"`
	Bones       BonesConfig       `yaml:"bones"`
	Glass       GlassConfig       `yaml:"glass"`
	Info        []InfoCard        `yaml:"info"`
}

// Timing holds the two auto-advance delays of a lab, in milliseconds.
type Timing struct {
	SolveDelayMS int `yaml:"solve_delay_ms"` // AllComplete -> Solved
	ExitDelayMS  int `yaml:"exit_delay_ms"`  // Solved -> back to the board, 0 = manual
}

// SolveDelay returns the solve delay as a duration.
func (t Timing) SolveDelay() time.Duration {
	return time.Duration(t.SolveDelayMS) * time.Millisecond
}

// ExitDelay returns the exit delay as a duration.
func (t Timing) ExitDelay() time.Duration {
	return time.Duration(t.ExitDelayMS) * time.Millisecond
}

// Progress builds a machine config for the given targets.
func (t Timing) Progress(targets []string, briefing bool) progress.Config {
	return progress.Config{
		Targets:    targets,
		Briefing:   briefing,
		SolveDelay: t.SolveDelay(),
		ExitDelay:  t.ExitDelay(),
	}
}

// PatternCard is one fingerprint flashcard.
type PatternCard struct {
	Pattern     string   `yaml:"pattern"` // LOOP, WHORL or ARCH
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Art         []string `yaml:"art"`
}

// FingerprintConfig defines the pattern academy.
type FingerprintConfig struct {
	Title             string        `yaml:"title"`
	Timing            Timing        `yaml:"timing"`
	Cards             []PatternCard `yaml:"cards"`
	Quiz              []string      `yaml:"quiz"` // expected pattern per question, in order
	CorrectFeedbackMS int           `yaml:"correct_feedback_ms"`
	WrongFeedbackMS   int           `yaml:"wrong_feedback_ms"`
}

// Card returns the flashcard for pattern.
func (c FingerprintConfig) Card(pattern string) (PatternCard, bool) {
	for _, card := range c.Cards {
		if card.Pattern == pattern {
			return card, true
		}
	}
	return PatternCard{}, false
}

// Reagent describes one blood test.
type Reagent struct {
	ID       string `yaml:"id"` // KASTLE or LUMINOL
	Label    string `yaml:"label"`
	NeedDark bool   `yaml:"need_dark"`
}

// BloodConfig defines the blood lab.
type BloodConfig struct {
	Title    string    `yaml:"title"`
	Timing   Timing    `yaml:"timing"`
	Reagents []Reagent `yaml:"reagents"`
	DropMS   int       `yaml:"drop_ms"`
}

// Suture is one skull growth gap.
type Suture struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// BonesConfig defines the skull growth lab.
type BonesConfig struct {
	Title     string   `yaml:"title"`
	Timing    Timing   `yaml:"timing"`
	Briefing  string   `yaml:"briefing"`
	Sutures   []Suture `yaml:"sutures"`
	AdultNote string   `yaml:"adult_note"`
}

// GlassPage is one page of the fracture walkthrough.
type GlassPage struct {
	Heading string   `yaml:"heading"`
	Body    []string `yaml:"body"`
}

// GlassOption is one field-test answer.
type GlassOption struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
	Reason  string `yaml:"reason"`
}

// GlassConfig defines the glass fracture lab.
type GlassConfig struct {
	Title    string        `yaml:"title"`
	Timing   Timing        `yaml:"timing"`
	Pages    []GlassPage   `yaml:"pages"`
	Question string        `yaml:"question"`
	Options  []GlassOption `yaml:"options"`
}

// InfoCard is a learning-lab reading card.
type InfoCard struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Body  []string `yaml:"body"`
}

// InfoCard returns the card with the given id.
func (c LabsConfig) InfoCard(id string) (InfoCard, bool) {
	for _, card := range c.Info {
		if card.ID == id {
			return card, true
		}
	}
	return InfoCard{}, false
}

// Validate checks the invariants the labs rely on.
func (c LabsConfig) Validate() error {
	for name, t := range map[string]Timing{
		"fingerprint": c.Fingerprint.Timing,
		"blood":       c.Blood.Timing,
		"bones":       c.Bones.Timing,
		"glass":       c.Glass.Timing,
	} {
		if t.SolveDelayMS < 0 || t.ExitDelayMS < 0 {
			return fmt.Errorf("config: %s: delays must not be negative", name)
		}
	}

	if len(c.Fingerprint.Quiz) == 0 {
		return fmt.Errorf("config: fingerprint: quiz is empty")
	}
	for i, p := range c.Fingerprint.Quiz {
		if _, ok := c.Fingerprint.Card(p); !ok {
			return fmt.Errorf("config: fingerprint: question %d uses unknown pattern %q", i+1, p)
		}
	}

	if len(c.Blood.Reagents) == 0 {
		return fmt.Errorf("config: blood: no reagents")
	}

	if len(c.Bones.Sutures) == 0 {
		return fmt.Errorf("config: bones: no sutures")
	}

	correct := 0
	for _, o := range c.Glass.Options {
		if o.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("config: glass: need exactly one correct option, got %d", correct)
	}
	return nil
}
