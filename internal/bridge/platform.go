package bridge

import "math"

// Platform is a horizontal landing strip. A moving platform oscillates between
// MinX and MaxX as a triangle wave that starts at InitialX when it spawns.
type Platform struct {
	X               float64 // Current left edge
	Width           float64
	Index           uint32 // Position in the run, 0 is the start platform
	IsMoving        bool
	Velocity        float64 // Signed, units per second
	InitialVelocity float64 // Velocity at spawn, sign included
	MinX            float64 // Motion bounds for the left edge
	MaxX            float64
	InitialX        float64 // Left edge at spawn
	SpawnTimeMs     int64   // Engine clock when the platform was generated
	Age             float64 // Seconds of motion simulated by Update
}

// Right returns the x-coordinate of the right edge.
func (p Platform) Right() float64 {
	return p.X + p.Width
}

// Center returns the x-coordinate of the platform's midpoint.
func (p Platform) Center() float64 {
	return p.X + p.Width/2
}

// InitialRight returns the right edge at spawn time.
// Layout generation is anchored here, never on the live position.
func (p Platform) InitialRight() float64 {
	return p.InitialX + p.Width
}

// SweepRight returns the farthest right edge the platform can ever reach.
func (p Platform) SweepRight() float64 {
	return p.MaxX + p.Width
}

// PositionAt returns the left edge t seconds after spawn without simulating
// frames. The replay validator relies on this being the only motion law.
func (p Platform) PositionAt(t float64) float64 {
	span := p.MaxX - p.MinX
	if span <= 0 {
		return p.InitialX
	}

	travel := (p.InitialX - p.MinX) + p.InitialVelocity*t
	period := 2 * span
	mod := math.Mod(math.Mod(travel, period)+period, period)

	if mod <= span {
		return p.MinX + mod
	}
	return p.MaxX - (mod - span)
}

// Update advances a moving platform by dt seconds, reflecting off its bounds.
func (p *Platform) Update(dt float64) {
	if !p.IsMoving {
		return
	}

	p.Age += dt
	if p.MaxX <= p.MinX {
		p.X = p.InitialX
		return
	}
	p.X += p.Velocity * dt

	// Fold any overshoot back inside so the path stays on the triangle wave
	for p.X < p.MinX || p.X > p.MaxX {
		if p.X > p.MaxX {
			p.X = p.MaxX - (p.X - p.MaxX)
			p.Velocity = -math.Abs(p.Velocity)
		} else {
			p.X = p.MinX + (p.MinX - p.X)
			p.Velocity = math.Abs(p.Velocity)
		}
	}
}

// Stop ends oscillation at the current position. Bounds are kept because the
// next platform's generation depends on them.
func (p *Platform) Stop() {
	p.IsMoving = false
	p.Velocity = 0
}

// Contains reports whether x lies on the platform's top surface.
func (p Platform) Contains(x float64) bool {
	return x >= p.X && x <= p.Right()
}
