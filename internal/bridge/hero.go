package bridge

import "github.com/vovakirdan/bridge-runner/internal/config"

// Hero is the player token. X and Y are the top-left corner of its box.
type Hero struct {
	X         float64
	Y         float64
	Rotation  float64 // Degrees, only non-zero while falling
	VelocityY float64
}

// PlaceOn stands the hero on p, flush with the right edge minus the inset.
func (h *Hero) PlaceOn(p Platform, cfg config.BridgeConfig) {
	h.X = StandX(p, cfg.Hero)
	h.Y = cfg.FloorY() - cfg.Hero.Height
	h.Rotation = 0
	h.VelocityY = 0
}

// Walk moves the hero right by speed*dt.
func (h *Hero) Walk(dt, speed float64) {
	h.X += speed * dt
}

// Fall applies gravity and spin for dt seconds.
func (h *Hero) Fall(dt, gravity, spin float64) {
	h.VelocityY += gravity * dt
	h.Y += h.VelocityY * dt
	h.Rotation += spin * dt
}

// StandX is where the hero's left edge rests on p.
func StandX(p Platform, hc config.HeroConfig) float64 {
	return p.Right() - hc.Width - hc.Inset
}
