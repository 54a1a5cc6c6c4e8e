package core

import "time"

// RuntimeConfig contains configuration passed to labs at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// TickInterval returns the fixed simulation step for the configured rate.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// LabState is returned by Lab.State() to communicate status to the platform.
type LabState struct {
	Completed int  // Targets completed so far
	Required  int  // Targets needed to solve the lab
	Solved    bool // The lab reached its solved phase
	Exit      bool // The lab wants the platform to leave its screen
}

// StepResult is returned by Lab.Step() after each simulation tick.
type StepResult struct {
	State LabState

	// JustSolved is true only on the tick the lab became solved.
	JustSolved bool
}
