// Package config provides YAML-based tuning for the bridge game and the
// difficulty progression that shapes its layout generator.
package config

import (
	"fmt"
	"math"
)

// BridgeConfig contains every tunable of the bridge game.
// The engine and the replay validator must be built from the same values,
// otherwise replayed scores will not match.
type BridgeConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Platforms  PlatformConfig   `yaml:"platforms"`
	Moving     MovingConfig     `yaml:"moving"`
	Stick      StickConfig      `yaml:"stick"`
	Hero       HeroConfig       `yaml:"hero"`
	Camera     CameraConfig     `yaml:"camera"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Replay     ReplayConfig     `yaml:"replay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewportConfig is the logical playfield size in world units.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformConfig defines platform geometry and spacing.
type PlatformConfig struct {
	Height     float64 `yaml:"height"`      // Vertical thickness, measured up from the viewport bottom
	StartX     float64 `yaml:"start_x"`     // Left edge of the first platform
	StartWidth float64 `yaml:"start_width"` // Width of the first platform
	MinWidth   float64 `yaml:"min_width"`
	MaxWidth   float64 `yaml:"max_width"`
	MinGap     float64 `yaml:"min_gap"`
	MaxGap     float64 `yaml:"max_gap"`
}

// MovingConfig defines oscillating platforms.
type MovingConfig struct {
	Probability float64 `yaml:"probability"` // Chance a platform oscillates
	FromIndex   uint32  `yaml:"from_index"`  // First platform index allowed to move
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinRange    float64 `yaml:"min_range"` // Oscillation half-range
	MaxRange    float64 `yaml:"max_range"`
	SafeGap     float64 `yaml:"safe_gap"` // Clearance kept from the previous platform's sweep
}

// StickConfig defines the bridge plank.
type StickConfig struct {
	GrowSpeed       float64 `yaml:"grow_speed"`        // Units per second
	MaxLength       float64 `yaml:"max_length"`        // Growth cap
	RotateSpeed     float64 `yaml:"rotate_speed"`      // Degrees per second
	FallRotateSpeed float64 `yaml:"fall_rotate_speed"` // Degrees per second after a miss
}

// HeroConfig defines the player token.
type HeroConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Inset      float64 `yaml:"inset"`       // Distance kept from the platform's right edge
	WalkSpeed  float64 `yaml:"walk_speed"`  // Units per second
	Gravity    float64 `yaml:"gravity"`     // Units per second squared while falling
	Spin       float64 `yaml:"spin"`        // Degrees per second while falling
	FallMargin float64 `yaml:"fall_margin"` // Distance below the viewport before a fall resolves
}

// CameraConfig defines cosmetic scroll and shake behaviour.
type CameraConfig struct {
	ScrollRate  float64 `yaml:"scroll_rate"` // Exponential approach rate per second
	GrowShake   float64 `yaml:"grow_shake"`
	ImpactShake float64 `yaml:"impact_shake"`
	ShakeDecay  float64 `yaml:"shake_decay"` // Amplitude lost per second
}

// ScoringConfig defines landing rewards.
type ScoringConfig struct {
	PerfectTolerance float64 `yaml:"perfect_tolerance"`
	PerfectPoints    int     `yaml:"perfect_points"`
	HitPoints        int     `yaml:"hit_points"`
}

// ReplayConfig controls the move log and what the validator accepts.
type ReplayConfig struct {
	RecordDebug bool  `yaml:"record_debug"`
	MaxMoves    int   `yaml:"max_moves"`
	MaxIdleMs   int64 `yaml:"max_idle_ms"`
}

// MaxDurationMs is the longest press that still grows the stick.
func (s StickConfig) MaxDurationMs() int64 {
	if s.GrowSpeed <= 0 {
		return 0
	}
	return int64(math.Floor(s.MaxLength / s.GrowSpeed * 1000))
}

// LengthFor returns the stick length produced by a press of durationMs.
func (s StickConfig) LengthFor(durationMs int64) float64 {
	return math.Min(s.GrowSpeed*float64(durationMs)/1000, s.MaxLength)
}

// FloorY returns the y coordinate of every platform's top surface.
func (c BridgeConfig) FloorY() float64 {
	return c.Viewport.Height - c.Platforms.Height
}

// ValidationError describes an inconsistent configuration.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the tuning values can produce a playable, overlap-free layout.
func (c BridgeConfig) Validate() error {
	p := c.Platforms
	m := c.Moving

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return ValidationError{Code: "VIEWPORT", Message: "viewport dimensions must be positive"}
	}
	if p.Height <= 0 || p.Height >= c.Viewport.Height {
		return ValidationError{Code: "PLATFORM_HEIGHT", Message: "platform height must fit inside the viewport"}
	}
	if p.MinWidth <= 0 || p.MaxWidth <= p.MinWidth {
		return ValidationError{Code: "PLATFORM_WIDTH", Message: fmt.Sprintf("need 0 < min_width < max_width, got %g..%g", p.MinWidth, p.MaxWidth)}
	}
	if p.MinGap <= 0 || p.MaxGap <= p.MinGap {
		return ValidationError{Code: "PLATFORM_GAP", Message: fmt.Sprintf("need 0 < min_gap < max_gap, got %g..%g", p.MinGap, p.MaxGap)}
	}
	if p.MinWidth < c.Hero.Width+c.Hero.Inset || p.StartWidth < c.Hero.Width+c.Hero.Inset {
		return ValidationError{Code: "HERO_FIT", Message: "platforms must be wide enough for the hero and its inset"}
	}
	if m.Probability < 0 || m.Probability > 1 {
		return ValidationError{Code: "MOVING_PROBABILITY", Message: "moving probability must be within [0, 1]"}
	}
	if m.MinSpeed <= 0 || m.MaxSpeed < m.MinSpeed {
		return ValidationError{Code: "MOVING_SPEED", Message: "moving speeds must be positive and ordered"}
	}
	if m.MinRange < 0 || m.MaxRange < m.MinRange {
		return ValidationError{Code: "MOVING_RANGE", Message: "moving ranges must be non-negative and ordered"}
	}
	if p.MinGap < m.MaxRange+m.SafeGap {
		return ValidationError{Code: "MOVING_OVERLAP", Message: fmt.Sprintf("min_gap %g must cover max_range %g plus safe_gap %g", p.MinGap, m.MaxRange, m.SafeGap)}
	}
	if c.Stick.GrowSpeed <= 0 || c.Stick.MaxLength <= 0 || c.Stick.RotateSpeed <= 0 {
		return ValidationError{Code: "STICK", Message: "stick speeds and length must be positive"}
	}
	if c.Stick.MaxLength < p.MaxGap+p.MaxWidth {
		return ValidationError{Code: "STICK_REACH", Message: "max_length cannot reach the farthest platform"}
	}
	if c.Hero.WalkSpeed <= 0 || c.Hero.Gravity <= 0 {
		return ValidationError{Code: "HERO", Message: "walk speed and gravity must be positive"}
	}
	if c.Camera.ScrollRate <= 0 || c.Camera.ShakeDecay < 0 {
		return ValidationError{Code: "CAMERA", Message: "scroll_rate must be positive and shake_decay non-negative"}
	}
	if c.Scoring.PerfectTolerance < 0 || c.Scoring.PerfectTolerance*2 > p.MinWidth {
		return ValidationError{Code: "PERFECT_TOLERANCE", Message: "perfect zone must fit inside the narrowest platform"}
	}
	if c.Replay.MaxMoves <= 0 {
		return ValidationError{Code: "REPLAY", Message: "max_moves must be positive"}
	}
	return nil
}
