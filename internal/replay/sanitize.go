// Package replay re-scores a recorded run from its seed and move log.
//
// It never steps the simulation frame by frame. Platform positions at each
// release come from the closed-form motion law, so the result does not depend
// on the frame rate the run was played at.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
)

var (
	ErrTooManyMoves = errors.New("replay: too many moves")
	ErrBadDuration  = errors.New("replay: duration out of range")
	ErrBadIdle      = errors.New("replay: idle duration out of range")
	ErrTimeline     = errors.New("replay: moves are not in time order")
)

// MoveError ties a validation failure to a move index.
type MoveError struct {
	Index int
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %d: %v", e.Index, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Limits bounds what a submitted run may contain.
type Limits struct {
	MaxMoves  int
	MaxIdleMs int64 // Zero disables the idle cap
}

// DefaultLimits reads the limits from the replay section of cfg.
func DefaultLimits(cfg config.BridgeConfig) Limits {
	return Limits{MaxMoves: cfg.Replay.MaxMoves, MaxIdleMs: cfg.Replay.MaxIdleMs}
}

// Sanitize rejects move logs that no engine built from cfg could have produced.
func Sanitize(cfg config.BridgeConfig, run bridge.RunData, lim Limits) error {
	if lim.MaxMoves > 0 && len(run.Moves) > lim.MaxMoves {
		return fmt.Errorf("%w: %d > %d", ErrTooManyMoves, len(run.Moves), lim.MaxMoves)
	}

	maxDuration := cfg.Stick.MaxDurationMs()
	var prevRelease int64
	for i, m := range run.Moves {
		if m.Duration < 0 || m.Duration > maxDuration {
			return &MoveError{Index: i, Err: fmt.Errorf("%w: %d not in [0, %d]", ErrBadDuration, m.Duration, maxDuration)}
		}
		if m.IdleDurationMs < 0 {
			return &MoveError{Index: i, Err: fmt.Errorf("%w: %d is negative", ErrBadIdle, m.IdleDurationMs)}
		}
		if lim.MaxIdleMs > 0 && m.IdleDurationMs > lim.MaxIdleMs {
			return &MoveError{Index: i, Err: fmt.Errorf("%w: %d > %d", ErrBadIdle, m.IdleDurationMs, lim.MaxIdleMs)}
		}
		if spawn := m.StartTime - m.IdleDurationMs; spawn < 0 {
			return &MoveError{Index: i, Err: fmt.Errorf("%w: spawn time %d is before clock zero", ErrTimeline, spawn)}
		}
		if m.StartTime < prevRelease {
			return &MoveError{Index: i, Err: fmt.Errorf("%w: start %d before %d", ErrTimeline, m.StartTime, prevRelease)}
		}
		prevRelease = m.ReleaseTime()
	}
	return nil
}
