package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
)

type stubLab struct {
	id     string
	closed bool
}

func (s *stubLab) ID() string                           { return s.id }
func (s *stubLab) Title() string                        { return strings.ToUpper(s.id) }
func (s *stubLab) Reset(core.RuntimeConfig)             {}
func (s *stubLab) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubLab) Render(*core.Canvas)                  {}
func (s *stubLab) State() core.LabState                 { return core.LabState{} }
func (s *stubLab) Close()                               { s.closed = true }

func register(id string, order int) {
	Register(LabInfo{ID: id, Title: id, Order: order}, func(config.LabsConfig) Lab {
		return &stubLab{id: id}
	})
}

func init() {
	register("zz-microscope", 2)
	register("zz-magnifier", 1)
}

func TestCreateAndExists(t *testing.T) {
	require.True(t, Exists("zz-microscope"))
	assert.False(t, Exists("zz-telescope"))

	lab, err := Create("zz-microscope", config.LabsConfig{})
	require.NoError(t, err)
	assert.Equal(t, "zz-microscope", lab.ID())

	// each Create returns a fresh instance
	other, err := Create("zz-microscope", config.LabsConfig{})
	require.NoError(t, err)
	assert.NotSame(t, lab, other)
}

func TestCreateUnknownSuggests(t *testing.T) {
	_, err := Create("zz-microscop", config.LabsConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "zz-microscope"`)

	assert.Empty(t, Suggest("completely-different"))
}

func TestListOrder(t *testing.T) {
	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz-") {
			ids = append(ids, info.ID)
		}
	}
	assert.Equal(t, []string{"zz-magnifier", "zz-microscope"}, ids)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { register("zz-magnifier", 9) })
}
