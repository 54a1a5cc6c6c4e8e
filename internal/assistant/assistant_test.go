package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls  atomic.Int32
	reply  string
	err    error
	block  chan struct{}
	called chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls.Add(1)
	if f.called != nil {
		f.called <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.reply, f.err
}

func TestAskRejectsBlankQueries(t *testing.T) {
	fc := &fakeCompleter{reply: "Hey Detective!"}
	a := New(fc, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := a.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Equal(t, int32(0), fc.calls.Load(), "blank queries must not reach the backend")
	assert.False(t, a.Pending())
}

func TestAskRejectsWhileBusy(t *testing.T) {
	fc := &fakeCompleter{
		reply:  "Hey Detective! 🔍",
		block:  make(chan struct{}),
		called: make(chan struct{}, 1),
	}
	a := New(fc, nil)

	done := make(chan Reply, 1)
	go func() {
		r, err := a.Ask(context.Background(), "what is luminol?")
		assert.NoError(t, err)
		done <- r
	}()

	<-fc.called
	assert.True(t, a.Pending())

	_, err := a.Ask(context.Background(), "second question")
	assert.ErrorIs(t, err, ErrBusy)

	close(fc.block)
	r := <-done
	assert.Equal(t, "Hey Detective! 🔍", r.Text)
	assert.False(t, r.Failed)
	assert.Equal(t, int32(1), fc.calls.Load())
	assert.False(t, a.Pending())
	assert.Equal(t, r, a.Last())
}

func TestAskFailureShowsFallback(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("connection refused")}
	a := New(fc, nil)

	r, err := a.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, Fallback, r.Text)
	assert.True(t, r.Failed)
	assert.False(t, a.Pending(), "busy flag clears after a failure")

	fc.err = nil
	fc.reply = "   "
	r, err = a.Ask(context.Background(), "hello again")
	require.NoError(t, err)
	assert.Equal(t, Fallback, r.Text, "empty replies count as failures")
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestAskWithoutBackendFallsBack(t *testing.T) {
	a := New(nil, nil)

	reply, err := a.Ask(context.Background(), "what is DNA?")
	require.NoError(t, err)
	assert.True(t, reply.Failed)
	assert.Equal(t, Fallback, reply.Text)
}

func TestOpenAICompleterSendsSystemAndUser(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hey Detective! 🧪 Luminol glows blue."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	a := New(c, nil)

	r, err := a.Ask(context.Background(), "what does luminol do?")
	require.NoError(t, err)
	assert.False(t, r.Failed)
	assert.Equal(t, "Hey Detective! 🧪 Luminol glows blue.", r.Text)

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "what does luminol do?", got.Messages[1].Content)
}

func TestOpenAICompleterServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	a := New(NewOpenAICompleter(OpenAIConfig{APIKey: "k", BaseURL: srv.URL + "/v1"}), nil)

	r, err := a.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.True(t, r.Failed)
	assert.Equal(t, Fallback, r.Text)
}

func TestOpenAICompleterMalformedBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [`))
	}))
	defer srv.Close()

	a := New(NewOpenAICompleter(OpenAIConfig{APIKey: "k", BaseURL: srv.URL + "/v1"}), nil)

	r, err := a.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, Fallback, r.Text)
}

func TestOpenAICompleterNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(OpenAIConfig{BaseURL: srv.URL + "/v1", Model: "tiny"})
	assert.Equal(t, "tiny", c.Model())

	_, err := c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, errNoChoices)
}
