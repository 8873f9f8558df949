package bridge

import "math"

// Camera tracks horizontal scroll and screen shake. It never affects scoring.
type Camera struct {
	X       float64
	TargetX float64
	Shake   float64
}

// ScrollTo sets the position the camera eases toward.
func (c *Camera) ScrollTo(x float64) {
	c.TargetX = x
}

// Trigger raises the shake amplitude to at least amount.
func (c *Camera) Trigger(amount float64) {
	c.Shake = math.Max(c.Shake, amount)
}

// Update eases toward the target and decays shake.
func (c *Camera) Update(dt, rate, decay float64) {
	c.Shake = math.Max(0, c.Shake-decay*dt)

	diff := c.TargetX - c.X
	if math.Abs(diff) < 1 {
		c.X = c.TargetX
		return
	}
	c.X += diff * math.Min(1, rate*dt)
}

// Converged reports whether the camera is within 1 unit of its target.
func (c Camera) Converged() bool {
	return math.Abs(c.TargetX-c.X) < 1
}

// Reset snaps the camera to x with no shake.
func (c *Camera) Reset(x float64) {
	c.X = x
	c.TargetX = x
	c.Shake = 0
}
