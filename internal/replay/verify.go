package replay

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
)

// debugEpsilon is how far recorded debug values may drift from recomputed ones.
const debugEpsilon = 1e-6

// Outcome is the recomputed result of one move.
type Outcome struct {
	Index     int
	Tip       float64
	PlatformX float64
	Hit       bool
	Perfect   bool
	Points    int
	// DebugMismatch is set when the move carried debug data that disagrees
	// with the recomputed tip or platform position.
	DebugMismatch bool
}

// Result is the recomputed score of a run.
type Result struct {
	Score           int
	Hits            int
	Perfects        int
	Misses          int
	BestStreak      int
	DebugMismatches int
	Outcomes        []Outcome
}

// Verdict classifies a submission.
type Verdict string

const (
	VerdictOK            Verdict = "ok"
	VerdictScoreMismatch Verdict = "score_mismatch"
	VerdictDebugMismatch Verdict = "debug_mismatch"
	VerdictRejected      Verdict = "rejected"
)

// Matches reports whether claimed equals the recomputed score.
func (r Result) Matches(claimed int) bool {
	return r.Score == claimed
}

// Verdict returns how a claimed score compares with the replay.
func (r Result) Verdict(claimed int) Verdict {
	switch {
	case !r.Matches(claimed):
		return VerdictScoreMismatch
	case r.DebugMismatches > 0:
		return VerdictDebugMismatch
	default:
		return VerdictOK
	}
}

// Verify sanitizes run and recomputes its score from the seed and moves.
func Verify(cfg config.BridgeConfig, run bridge.RunData, lim Limits) (Result, error) {
	if err := Sanitize(cfg, run, lim); err != nil {
		return Result{}, err
	}

	layout := bridge.NewLayout(cfg, run.Seed)
	current, target := layout.Initial()

	res := Result{Outcomes: make([]Outcome, 0, len(run.Moves))}
	streak := 0
	roundSpawn := int64(0) // Engine time at which the current target spawned
	roundOpen := true      // Spawn time of the current target is already known
	var prevRelease int64

	for i, m := range run.Moves {
		spawn := m.StartTime - m.IdleDurationMs
		if roundOpen && spawn != roundSpawn {
			return Result{}, &MoveError{Index: i, Err: fmt.Errorf("%w: round started at %d, expected %d", ErrTimeline, spawn, roundSpawn)}
		}
		if !roundOpen && spawn < prevRelease {
			return Result{}, &MoveError{Index: i, Err: fmt.Errorf("%w: round started at %d before previous release %d", ErrTimeline, spawn, prevRelease)}
		}
		roundSpawn = spawn
		target.SpawnTimeMs = spawn

		frozen := bridge.Freeze(target, m.ReleaseTime())
		landing := bridge.Judge(cfg.Scoring, current, frozen, cfg.Stick.LengthFor(m.Duration))

		out := Outcome{
			Index:     i,
			Tip:       landing.Tip,
			PlatformX: frozen.X,
			Hit:       landing.Hit,
			Perfect:   landing.Perfect,
			Points:    landing.Points,
		}
		if d := m.Debug; d != nil {
			if math.Abs(d.StickTip-landing.Tip) > debugEpsilon || math.Abs(d.PlatformX-frozen.X) > debugEpsilon {
				out.DebugMismatch = true
				res.DebugMismatches++
			}
		}
		res.Outcomes = append(res.Outcomes, out)
		prevRelease = m.ReleaseTime()

		if !landing.Hit {
			// The hero is revived onto the same platform and faces the frozen target
			res.Misses++
			streak = 0
			target = frozen
			roundOpen = true
			continue
		}

		res.Hits++
		res.Score += landing.Points
		if landing.Perfect {
			res.Perfects++
			streak++
			res.BestStreak = max(res.BestStreak, streak)
		} else {
			streak = 0
		}
		current = frozen
		target = layout.Next(frozen, 0)
		roundOpen = false
	}
	return res, nil
}
