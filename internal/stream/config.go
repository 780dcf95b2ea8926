package stream

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRange is returned when a min/max pair is inverted or non-positive.
	ErrInvalidRange = errors.New("invalid range")
	// ErrGapNotJumpable is returned when the widest gap exceeds the jump reach.
	ErrGapNotJumpable = errors.New("gap wider than jump reach")
)

// Config holds the streamer tuning. Lengths share one unit, speeds are
// units per second.
type Config struct {
	MinWidth  float64
	MaxWidth  float64
	MinGap    float64
	MaxGap    float64
	GapChance float64

	RunwaySegments int
	RunwayWidth    float64

	SpawnLookahead float64
	RetireMargin   float64
	ViewportWidth  float64

	StartSpeed   float64
	MaxSpeed     float64
	SpeedRamp    float64
	TickInterval time.Duration

	// MaxJump is the widest hole the player can clear.
	MaxJump float64

	UnitsPerMeter float64
}

const (
	RunSpeed     = 150.0
	JumpVelocity = 450.0
	Gravity      = 800.0
)

// DefaultConfig returns the Castle Escape tuning in world pixels.
func DefaultConfig() Config {
	return Config{
		MinWidth:       150,
		MaxWidth:       250,
		MinGap:         50,
		MaxGap:         100,
		GapChance:      0.5,
		RunwaySegments: 5,
		RunwayWidth:    200,
		SpawnLookahead: 400,
		RetireMargin:   100,
		ViewportWidth:  800,
		StartSpeed:     200,
		MaxSpeed:       400,
		SpeedRamp:      0.1,
		TickInterval:   100 * time.Millisecond,
		MaxJump:        JumpReach(RunSpeed, JumpVelocity, Gravity),
		UnitsPerMeter:  10,
	}
}

// JumpReach returns the horizontal distance covered by a jump that leaves
// and lands at the same height.
func JumpReach(runSpeed, jumpVelocity, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	if jumpVelocity < 0 {
		jumpVelocity = -jumpVelocity
	}
	return runSpeed * 2 * jumpVelocity / gravity
}

// JumpHeight returns the apex of a jump.
func JumpHeight(jumpVelocity, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	return jumpVelocity * jumpVelocity / (2 * gravity)
}

// Scaled returns a copy with every length and speed divided by unitsPerCell.
// Terminal scenes use it to move from pixels to cells.
func (c Config) Scaled(unitsPerCell float64) Config {
	if unitsPerCell <= 0 {
		return c
	}
	s := c
	s.MinWidth /= unitsPerCell
	s.MaxWidth /= unitsPerCell
	s.MinGap /= unitsPerCell
	s.MaxGap /= unitsPerCell
	s.RunwayWidth /= unitsPerCell
	s.SpawnLookahead /= unitsPerCell
	s.RetireMargin /= unitsPerCell
	s.ViewportWidth /= unitsPerCell
	s.StartSpeed /= unitsPerCell
	s.MaxSpeed /= unitsPerCell
	s.SpeedRamp /= unitsPerCell
	s.MaxJump /= unitsPerCell
	s.UnitsPerMeter /= unitsPerCell
	return s
}

func (c Config) Validate() error {
	if c.MinWidth <= 0 || c.MaxWidth < c.MinWidth {
		return fmt.Errorf("segment width [%g, %g]: %w", c.MinWidth, c.MaxWidth, ErrInvalidRange)
	}
	if c.MinGap <= 0 || c.MaxGap < c.MinGap {
		return fmt.Errorf("gap width [%g, %g]: %w", c.MinGap, c.MaxGap, ErrInvalidRange)
	}
	if c.MaxGap > c.MaxJump {
		return fmt.Errorf("max gap %g, jump reach %g: %w", c.MaxGap, c.MaxJump, ErrGapNotJumpable)
	}
	if c.GapChance < 0 || c.GapChance > 1 {
		return fmt.Errorf("gap chance %g: %w", c.GapChance, ErrInvalidRange)
	}
	if c.RunwaySegments < 0 || (c.RunwaySegments > 0 && c.RunwayWidth <= 0) {
		return fmt.Errorf("runway %d x %g: %w", c.RunwaySegments, c.RunwayWidth, ErrInvalidRange)
	}
	if c.StartSpeed < 0 || c.MaxSpeed < c.StartSpeed || c.SpeedRamp < 0 {
		return fmt.Errorf("speed [%g, %g] ramp %g: %w", c.StartSpeed, c.MaxSpeed, c.SpeedRamp, ErrInvalidRange)
	}
	if c.ViewportWidth <= 0 || c.SpawnLookahead < 0 || c.RetireMargin < 0 {
		return fmt.Errorf("viewport %g lookahead %g retire %g: %w",
			c.ViewportWidth, c.SpawnLookahead, c.RetireMargin, ErrInvalidRange)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval %v: %w", c.TickInterval, ErrInvalidRange)
	}
	return nil
}
