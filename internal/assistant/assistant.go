// Package assistant wraps the Junior Lab chat assistant.
//
// Each Ask sends the fixed system instruction plus the player's text as one
// request and keeps only the latest reply. There is no conversation memory,
// no retry and no timeout beyond what the caller's context carries.
package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// SystemPrompt sets the assistant's tone and format.
const SystemPrompt = `You are a fun Junior Lab Assistant.
1. Keep replies VERY short (max 3 sentences).
2. Use LOTS of emojis (🧪, 🔍, 🧬, ✨).
3. Use proper spacing between sentences.
4. Always start with a friendly greeting like "Hey Detective!"
5. Use kid-friendly language for school students.`

// Fallback is shown whenever a request fails for any reason.
const Fallback = "Oops! 😵 My lab tools are broken. Try again! 🧪"

var (
	// ErrEmptyQuery is returned for blank input; no request is made.
	ErrEmptyQuery = errors.New("assistant: query is empty")

	// ErrBusy is returned while another request is in flight; no request is made.
	ErrBusy = errors.New("assistant: a request is already in flight")

	// ErrNoBackend is what an assistant built without a completer fails with.
	ErrNoBackend = errors.New("assistant: no backend configured")
)

// Completer sends one system+user exchange to a text-generation backend.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Reply is the outcome of one Ask.
type Reply struct {
	Query  string
	Text   string
	Failed bool // Text is the fallback message
}

// Assistant serializes requests to a Completer.
type Assistant struct {
	completer Completer
	logger    *log.Logger

	mu       sync.Mutex
	inFlight bool
	last     Reply
}

// offline answers every request with ErrNoBackend.
type offline struct{}

func (offline) Complete(context.Context, string, string) (string, error) {
	return "", ErrNoBackend
}

// New creates an assistant. A nil logger discards log output. A nil
// completer makes every Ask return the fallback reply.
func New(c Completer, logger *log.Logger) *Assistant {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if c == nil {
		c = offline{}
	}
	return &Assistant{
		completer: c,
		logger:    logger,
	}
}

// Ask sends query and waits for the reply.
// Blank queries and queries issued while another is pending are rejected
// without an outbound call. Backend failures are not returned as errors:
// the reply carries the fallback text instead.
func (a *Assistant) Ask(ctx context.Context, query string) (Reply, error) {
	if strings.TrimSpace(query) == "" {
		return Reply{}, ErrEmptyQuery
	}

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return Reply{}, ErrBusy
	}
	a.inFlight = true
	a.mu.Unlock()

	start := time.Now()
	text, err := a.completer.Complete(ctx, SystemPrompt, query)
	text = strings.TrimSpace(text)

	reply := Reply{Query: query, Text: text}
	switch {
	case err != nil:
		a.logger.Warn("assistant request failed", "duration", time.Since(start), "error", err)
		reply.Text = Fallback
		reply.Failed = true
	case text == "":
		a.logger.Warn("assistant returned an empty reply", "duration", time.Since(start))
		reply.Text = Fallback
		reply.Failed = true
	default:
		a.logger.Info("assistant replied", "duration", time.Since(start), "chars", len(text))
	}

	a.mu.Lock()
	a.last = reply
	a.inFlight = false
	a.mu.Unlock()

	return reply, nil
}

// Pending reports whether a request is in flight.
func (a *Assistant) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

// Last returns the most recent reply, or the zero Reply before the first one.
func (a *Assistant) Last() Reply {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
