// Package autoplay drives a bridge engine headlessly, the way a player would.
package autoplay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
)

var (
	ErrNotStarted = errors.New("autoplay: engine has no seed")
	ErrStalled    = errors.New("autoplay: step budget exhausted")
)

// Player is a scripted opponent.
type Player struct {
	Aim        float64 // Offset from the target centre to aim at
	Dt         float64 // Frame time in seconds
	MaxSteps   int     // Per-round step budget
	IdleFrames int     // Frames to wait before each press
	MissEvery  int     // Deliberately drop a zero-length stick every N rounds, 0 never
	PowerUps   int     // Purchased revives to spend after the free one
}

// DefaultPlayer aims at the centre at 60 frames per second.
func DefaultPlayer() Player {
	return Player{Dt: 1.0 / 60, MaxSteps: 20000, IdleFrames: 10}
}

// Summary describes a finished autoplay session.
type Summary struct {
	Rounds   int
	Score    int
	Perfects int
	Misses   int
	Revives  int
	PowerUps int
	Over     bool
	Events   []bridge.Event
}

// Play runs up to rounds press-release cycles on a started engine. It stops
// early when the engine reports game over.
func (p Player) Play(e *bridge.Engine, rounds int) (Summary, error) {
	if !e.Started() {
		return Summary{}, ErrNotStarted
	}
	if p.Dt <= 0 {
		p.Dt = 1.0 / 60
	}
	if p.MaxSteps <= 0 {
		p.MaxSteps = 20000
	}

	var sum Summary
	powerUps := p.PowerUps
	for sum.Rounds < rounds {
		for i := 0; i < p.IdleFrames; i++ {
			sum.Events = append(sum.Events, e.Step(true, p.Dt)...)
		}

		sum.Rounds++
		if p.MissEvery > 0 && sum.Rounds%p.MissEvery == 0 {
			e.HandleInputDown(true)
			e.HandleInputUp(true)
		} else if err := p.press(e, &sum); err != nil {
			return sum, fmt.Errorf("round %d: %w", sum.Rounds, err)
		}

		if err := p.settle(e, &sum); err != nil {
			return sum, fmt.Errorf("round %d: %w", sum.Rounds, err)
		}

		s := e.State()
		switch {
		case s.AwaitingRevive:
			sum.Misses++
			sum.Revives++
			e.Revive()
		case s.Over && powerUps > 0:
			sum.Misses++
			sum.PowerUps++
			powerUps--
			e.RevivePowerUp()
		case s.Over:
			sum.Misses++
			sum.Over = true
		}
		if sum.Over {
			break
		}
	}

	s := e.State()
	sum.Score = s.Score
	sum.Perfects = s.Perfects
	return sum, nil
}

// press holds until the predicted tip reaches the aim point at the release instant.
func (p Player) press(e *bridge.Engine, sum *Summary) error {
	rs := e.RenderState()
	origin := rs.Platforms[0].Right()
	target := rs.Platforms[1]
	stick := e.Config().Stick

	e.HandleInputDown(true)
	start := e.EngineTimeMs()
	for i := 0; i < p.MaxSteps; i++ {
		now := e.EngineTimeMs()
		length := stick.LengthFor(now - start)
		if origin+length >= aimX(target, now)+p.Aim || length >= stick.MaxLength {
			e.HandleInputUp(true)
			return nil
		}
		sum.Events = append(sum.Events, e.Step(true, p.Dt)...)
	}
	return ErrStalled
}

// settle steps until the round returns to IDLE or a fall resolves.
func (p Player) settle(e *bridge.Engine, sum *Summary) error {
	for i := 0; i < p.MaxSteps; i++ {
		sum.Events = append(sum.Events, e.Step(true, p.Dt)...)
		s := e.State()
		if s.Phase == bridge.PhaseIdle || s.AwaitingRevive || s.Over {
			return nil
		}
	}
	return ErrStalled
}

// aimX predicts the target centre at engine time nowMs.
func aimX(p bridge.Platform, nowMs int64) float64 {
	if !p.IsMoving {
		return p.Center()
	}
	return p.PositionAt(float64(nowMs-p.SpawnTimeMs)/1000) + p.Width/2
}
