package bridge

import "math"

// Stick is the plank the player grows and drops across the gap.
// Rotation is in degrees: 0 points straight up, 90 lies flat to the right.
type Stick struct {
	Length   float64
	Rotation float64
}

// Grow extends the stick by speed*dt, clamped to max.
func (s *Stick) Grow(dt, speed, max float64) {
	s.Length = math.Min(s.Length+speed*dt, max)
}

// Rotate turns the stick clockwise by speed*dt and reports whether it reached limit.
func (s *Stick) Rotate(dt, speed, limit float64) bool {
	s.Rotation += speed * dt
	if s.Rotation >= limit {
		s.Rotation = limit
		return true
	}
	return false
}

// Reset zeroes length and rotation.
func (s *Stick) Reset() {
	s.Length = 0
	s.Rotation = 0
}
