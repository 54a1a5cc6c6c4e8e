// Package registry provides a global registry for lab factories.
// Labs register themselves in init() functions, allowing the platform
// to discover and instantiate labs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
)

// Lab is the interface every forensic mini-game implements.
// Labs contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Lab interface {
	// ID returns a unique identifier for this lab (e.g., "blood").
	ID() string

	// Title returns the lab's heading (e.g., "BLOOD LAB").
	Title() string

	// Reset initializes the lab for a fresh visit.
	Reset(cfg core.RuntimeConfig)

	// Step advances the lab by one fixed tick, applying the frame's actions
	// and moving any running timers forward by one tick interval.
	Step(in core.InputFrame) core.StepResult

	// Render draws the lab into dst. The canvas is pre-cleared.
	Render(dst *core.Canvas)

	// State returns the lab's progress.
	State() core.LabState

	// Close cancels pending timers. Called when the lab screen is torn down.
	Close()
}

// LabInfo contains metadata about a registered lab.
type LabInfo struct {
	ID    string
	Title string // Evidence board label
	Order int    // Position on the evidence board
}

// Factory creates a new lab instance from the loaded content.
type Factory func(cfg config.LabsConfig) Lab

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]LabInfo)
	mu        sync.RWMutex
)

// Register adds a lab factory to the registry.
// Typically called from a lab's init() function.
// Panics if a lab with the same ID is already registered.
func Register(info LabInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: lab %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns all registered labs in board order.
func List() []LabInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LabInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new lab by its ID.
// Returns an error if the lab ID is not registered.
func Create(id string, cfg config.LabsConfig) (Lab, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		if s := Suggest(id); s != "" {
			return nil, fmt.Errorf("registry: unknown lab %q (did you mean %q?)", id, s)
		}
		return nil, fmt.Errorf("registry: unknown lab %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a lab with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// maxSuggestDistance bounds how far a typo may be from a real id.
const maxSuggestDistance = 3

// Suggest returns the registered id closest to id, or "" if none is close.
func Suggest(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	best, bestDist := "", maxSuggestDistance+1
	for known := range factories {
		d := levenshtein.ComputeDistance(id, known)
		if d < bestDist || (d == bestDist && known < best) {
			best, bestDist = known, d
		}
	}
	if bestDist > maxSuggestDistance {
		return ""
	}
	return best
}
