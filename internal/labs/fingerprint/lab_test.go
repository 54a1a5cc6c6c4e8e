package fingerprint

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
	return New(cfg.Fingerprint)
}

// run steps the lab n times with no input.
func run(l *Lab, n int) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = l.Step(core.NewInputFrame())
	}
	return res
}

// ticks returns the number of 30 Hz ticks covering ms milliseconds.
func ticks(ms int) int {
	return ms*30/1000 + 1
}

func TestFlashcardsThenQuiz(t *testing.T) {
	l := newLab(t)

	require.Equal(t, progress.PhaseBriefing, l.Phase())
	assert.False(t, l.Answer("WHORL"), "answers must be ignored during the flashcards")

	l.Step(core.FrameOf(core.ActionLeft))
	assert.Equal(t, 0, l.card, "paging left at the start")

	l.Step(core.FrameOf(core.ActionConfirm))
	l.Step(core.FrameOf(core.ActionRight))
	require.Equal(t, 2, l.card)
	l.Step(core.FrameOf(core.ActionConfirm))
	assert.Equal(t, progress.PhaseActive, l.Phase(), "START QUIZ leaves the flashcards")
}

func TestQuizFullRun(t *testing.T) {
	l := newLab(t)
	l.StartQuiz()

	for i, pattern := range []string{"WHORL", "ARCH", "LOOP"} {
		require.Equal(t, i, l.Question())
		require.True(t, l.Answer(pattern), "Answer(%s) on question %d", pattern, i)
		assert.Equal(t, FeedbackCorrect, l.Feedback())
		assert.False(t, l.Answer(pattern), "double tap while feedback is showing must be ignored")
		if i < 2 {
			run(l, ticks(800))
			assert.Equal(t, FeedbackIdle, l.Feedback(), "feedback still showing after 800ms")
		}
	}

	require.Equal(t, progress.PhaseAllComplete, l.Phase())

	solved := false
	for i := 0; i < ticks(800); i++ {
		if l.Step(core.NewInputFrame()).JustSolved {
			solved = true
		}
	}
	require.True(t, solved, "lab should be solved 800ms after the last answer")
	require.True(t, l.State().Solved)

	// no automatic exit: LOG EVIDENCE is manual
	run(l, 300)
	assert.False(t, l.State().Exit, "fingerprint lab must not exit on its own")
	l.Step(core.FrameOf(core.ActionConfirm))
	assert.True(t, l.State().Exit, "LOG EVIDENCE should exit the lab")
}

func TestWrongAnswerFeedback(t *testing.T) {
	l := newLab(t)
	l.StartQuiz()

	require.False(t, l.Answer("LOOP"), "LOOP is not the first print")
	require.Equal(t, FeedbackWrong, l.Feedback())
	assert.False(t, l.Answer("WHORL"), "answers are locked while WRONG PATTERN shows")

	run(l, ticks(1000))
	assert.Equal(t, FeedbackIdle, l.Feedback(), "feedback should clear after 1000ms")
	assert.Equal(t, 0, l.Question(), "a wrong answer must not advance the quiz")
	assert.Equal(t, 0, l.State().Completed)
	assert.True(t, l.Answer("WHORL"), "retry after a wrong answer should be accepted")
}

func TestCursorAnswers(t *testing.T) {
	l := newLab(t)
	l.StartQuiz()

	// LOOP -> WHORL
	l.Step(core.FrameOf(core.ActionDown))
	l.Step(core.FrameOf(core.ActionConfirm))
	assert.Equal(t, FeedbackCorrect, l.Feedback())
}

func TestCloseCancelsTimers(t *testing.T) {
	l := newLab(t)
	l.StartQuiz()
	l.Answer("WHORL")
	l.Close()

	run(l, 100)
	assert.Equal(t, 0, l.Question(), "feedback timer fired after Close")
}

func TestRender(t *testing.T) {
	l := newLab(t)
	c := core.NewCanvas(80, 24)

	l.Render(c)
	out := c.String()
	for _, want := range []string{"PATTERN ACADEMY", "THE LOOP", "1 / 3"} {
		assert.Contains(t, out, want)
	}

	l.StartQuiz()
	l.Answer("ARCH")
	c.Clear()
	l.Render(c)
	assert.Contains(t, c.String(), "WRONG PATTERN")
}
