// Package exam scores the final test and maps the score to a badge tier.
package exam

import (
	"errors"
	"fmt"
	"math"
)

// OptionCount is the number of answers every question offers.
const OptionCount = 2

var (
	// ErrIncomplete is returned by Submit while a question is unanswered.
	ErrIncomplete = errors.New("exam: not every question is answered")

	// ErrOutOfRange is returned for a question or option index that does not exist.
	ErrOutOfRange = errors.New("exam: index out of range")
)

// Question is one two-option exam question.
type Question struct {
	Prompt  string `csv:"prompt"`
	OptionA string `csv:"option_a"`
	OptionB string `csv:"option_b"`
	Correct int    `csv:"correct"`
	Topic   string `csv:"topic"`
}

// Options returns the answers in display order.
func (q Question) Options() [OptionCount]string {
	return [OptionCount]string{q.OptionA, q.OptionB}
}

// Result is the outcome of a submitted exam.
type Result struct {
	Score   int // Percentage, 0-100
	Correct int
	Total   int
	Tier    Tier
}

// Scorer collects one answer per question.
type Scorer struct {
	questions []Question
	answers   map[int]int
}

// NewScorer creates a scorer for a fixed question list.
func NewScorer(questions []Question) (*Scorer, error) {
	if len(questions) == 0 {
		return nil, errors.New("exam: no questions")
	}
	for i, q := range questions {
		if q.Correct < 0 || q.Correct >= OptionCount {
			return nil, fmt.Errorf("exam: question %d: correct index %d: %w", i+1, q.Correct, ErrOutOfRange)
		}
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Scorer{
		questions: qs,
		answers:   make(map[int]int, len(qs)),
	}, nil
}

// Questions returns the question list.
func (s *Scorer) Questions() []Question {
	return s.questions
}

// Select records option as the answer to question, replacing any earlier choice.
func (s *Scorer) Select(question, option int) error {
	if question < 0 || question >= len(s.questions) {
		return fmt.Errorf("exam: question %d: %w", question, ErrOutOfRange)
	}
	if option < 0 || option >= OptionCount {
		return fmt.Errorf("exam: option %d: %w", option, ErrOutOfRange)
	}
	s.answers[question] = option
	return nil
}

// Selection returns the recorded answer for question.
func (s *Scorer) Selection(question int) (int, bool) {
	opt, ok := s.answers[question]
	return opt, ok
}

// Answered returns how many questions have an answer.
func (s *Scorer) Answered() int {
	return len(s.answers)
}

// Total returns the number of questions.
func (s *Scorer) Total() int {
	return len(s.questions)
}

// CanSubmit reports whether every question has an answer.
func (s *Scorer) CanSubmit() bool {
	return len(s.answers) == len(s.questions)
}

// Submit scores the exam.
func (s *Scorer) Submit() (Result, error) {
	if !s.CanSubmit() {
		return Result{}, ErrIncomplete
	}

	correct := 0
	for i, q := range s.questions {
		if s.answers[i] == q.Correct {
			correct++
		}
	}

	score := Score(correct, len(s.questions))
	return Result{
		Score:   score,
		Correct: correct,
		Total:   len(s.questions),
		Tier:    Classify(score),
	}, nil
}

// Score returns round(100 * correct / total), or 0 for an empty exam.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
