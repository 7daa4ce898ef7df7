package core

import "time"

// RuntimeConfig carries the loop settings the engine needs at start-up.
type RuntimeConfig struct {
	FrameTime time.Duration // target duration of one loop iteration
	StepEvery int           // a Step event is broadcast every StepEvery ticks
	MaxTicks  int           // stop after this many ticks; 0 runs until game over
	ScreenW   int           // terminal viewport width in cells
	ScreenH   int           // terminal viewport height in cells
}

// DefaultConfig returns the settings of a 30 fps loop.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		FrameTime: 33 * time.Millisecond,
		StepEvery: 10,
		MaxTicks:  0,
		ScreenW:   80,
		ScreenH:   24,
	}
}

// Normalize fills zero or negative fields with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	d := DefaultConfig()
	if c.FrameTime <= 0 {
		c.FrameTime = d.FrameTime
	}
	if c.StepEvery <= 0 {
		c.StepEvery = d.StepEvery
	}
	if c.MaxTicks < 0 {
		c.MaxTicks = 0
	}
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	return c
}
