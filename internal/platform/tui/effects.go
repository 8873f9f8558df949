package tui

import (
	"math"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/core"
)

// effectLife is how long a particle burst stays on screen, in seconds.
const effectLife = 0.6

type burst struct {
	p   bridge.Particle
	age float64
}

// Effects holds particle bursts emitted by the engine. Their lifetime runs on
// host wall time and never feeds back into the simulation.
type Effects struct {
	bursts []burst
}

// Emit records a burst. It matches bridge.ParticleEmitter.
func (f *Effects) Emit(p bridge.Particle) {
	f.bursts = append(f.bursts, burst{p: p})
}

// Update ages bursts by dt seconds and drops expired ones.
func (f *Effects) Update(dt float64) {
	live := f.bursts[:0]
	for _, b := range f.bursts {
		b.age += dt
		if b.age < effectLife {
			live = append(live, b)
		}
	}
	f.bursts = live
}

// Reset drops all bursts.
func (f *Effects) Reset() {
	f.bursts = f.bursts[:0]
}

// Len returns the number of live bursts.
func (f *Effects) Len() int {
	return len(f.bursts)
}

// Draw spreads each burst's particles outward as it ages.
func (f *Effects) Draw(dst *core.Screen, proj core.Projection) {
	for _, b := range f.bursts {
		glyph, color := particleLook(b.p.Kind)
		k := b.age / effectLife
		n := max(b.p.Count, 1)
		for i := range n {
			angle := math.Pi * float64(i) / float64(n)
			r := 6 + 50*k
			x := b.p.X + math.Cos(angle)*r
			y := b.p.Y - math.Sin(angle)*r
			if b.p.Kind == bridge.ParticleDebris {
				y = b.p.Y + 160*k*k
			}
			cx, cy := proj.Cell(x, y)
			dst.Set(cx, cy, glyph, color)
		}
	}
}

func particleLook(kind bridge.ParticleKind) (rune, core.Color) {
	switch kind {
	case bridge.ParticleSparkle:
		return '*', core.ColorYellow
	case bridge.ParticleDebris:
		return '#', core.ColorOrange
	default:
		return '.', core.ColorGray
	}
}
