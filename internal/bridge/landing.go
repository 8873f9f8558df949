package bridge

import (
	"math"

	"github.com/vovakirdan/bridge-runner/internal/config"
)

// Landing is the outcome of dropping a stick of a given length.
type Landing struct {
	Tip     float64
	Hit     bool
	Perfect bool
	Points  int
}

// Judge decides where a stick of length lands when laid from current's right
// edge towards target. The engine and the replay validator share it so both
// compute the tip with the same floating point operations.
func Judge(sc config.ScoringConfig, current, target Platform, length float64) Landing {
	tip := current.Right() + length
	l := Landing{Tip: tip}
	if !target.Contains(tip) {
		return l
	}

	l.Hit = true
	l.Points = sc.HitPoints
	if math.Abs(tip-target.Center()) <= sc.PerfectTolerance {
		l.Perfect = true
		l.Points = sc.PerfectPoints
	}
	return l
}

// Freeze pins a moving platform to its closed-form position at releaseMs and
// stops it. A platform that is already stationary is returned unchanged.
func Freeze(p Platform, releaseMs int64) Platform {
	if !p.IsMoving {
		return p
	}
	p.X = p.PositionAt(float64(releaseMs-p.SpawnTimeMs) / 1000)
	p.Stop()
	return p
}
