package bridge

import (
	"math"

	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/rng"
)

// Layout generates the platform sequence for a seed. The engine and the replay
// validator each own one; both must draw from it in the same order.
type Layout struct {
	cfg        config.BridgeConfig
	rng        *rng.Source
	difficulty *config.DifficultyManager
}

// NewLayout creates a generator for the given seed.
func NewLayout(cfg config.BridgeConfig, seed uint32) *Layout {
	return &Layout{
		cfg:        cfg,
		rng:        rng.New(seed),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Initial returns the start platform and the first target platform.
func (l *Layout) Initial() (Platform, Platform) {
	p := l.cfg.Platforms
	start := Platform{
		X:        p.StartX,
		Width:    p.StartWidth,
		Index:    0,
		InitialX: p.StartX,
		MinX:     p.StartX,
		MaxX:     p.StartX,
	}
	return start, l.Next(start, 0)
}

// Next generates the platform that follows prev, spawned at spawnMs.
// Only spawn-time fields of prev are read, so a frozen or drifted prev
// yields the same result as a fresh one.
func (l *Layout) Next(prev Platform, spawnMs int64) Platform {
	pc := l.cfg.Platforms
	mc := l.cfg.Moving
	index := prev.Index + 1

	width := rng.Range(l.rng, pc.MinWidth, pc.MaxWidth)
	gap := rng.Range(l.rng, pc.MinGap, pc.MaxGap)
	base := prev.InitialRight()
	x := base + gap

	plat := Platform{
		X:           x,
		Width:       width,
		Index:       index,
		InitialX:    x,
		MinX:        x,
		MaxX:        x,
		SpawnTimeMs: spawnMs,
	}

	if index < mc.FromIndex {
		return plat
	}
	if l.rng.Float64() >= l.difficulty.MovingProbability(mc.Probability, index) {
		return plat
	}

	speed := l.difficulty.Speed(rng.Range(l.rng, mc.MinSpeed, mc.MaxSpeed), index)
	if l.rng.Float64() < 0.5 {
		speed = -speed
	}
	half := rng.Range(l.rng, mc.MinRange, mc.MaxRange)

	// Keep clear of the previous platform's sweep and inside our own spawn window
	minX := math.Max(x-half, math.Max(base+pc.MinGap, prev.SweepRight()+mc.SafeGap))
	maxX := math.Min(x+half, base+pc.MaxGap)
	if maxX-minX <= 0 {
		return plat
	}

	plat.IsMoving = true
	plat.Velocity = speed
	plat.InitialVelocity = speed
	plat.MinX = minX
	plat.MaxX = maxX
	return plat
}
