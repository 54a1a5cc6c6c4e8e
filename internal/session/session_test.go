package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrimsAndGreets(t *testing.T) {
	s, err := New("  Ada ")
	require.NoError(t, err)

	assert.Equal(t, "Ada", s.Name())
	assert.Equal(t, "Hi, Ada!", s.Greeting())
	assert.Contains(t, s.DetectiveLine(), "Ada")
	assert.NotEmpty(t, s.ID())
	assert.True(t, s.Valid())
}

func TestNewRejectsBlankNames(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n"} {
		_, err := New(name)
		assert.ErrorIs(t, err, ErrEmptyName, "New(%q)", name)
	}

	var zero Session
	assert.False(t, zero.Valid())
}

func TestNewKeepsLongNames(t *testing.T) {
	name := strings.Repeat("é", 40)
	s, err := New(name)
	require.NoError(t, err)

	assert.Equal(t, name, s.Name())
	assert.Equal(t, "Detective "+name, s.DetectiveLine())
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a, err := New("Ada")
	require.NoError(t, err)
	b, err := New("Ada")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID(), "two play-throughs should not share an id")
}
