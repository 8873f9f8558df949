package bridge

import "math"

// Move is one press-to-release gesture. All times come from the engine clock,
// never from wall time, so a replay depends only on these numbers.
type Move struct {
	StartTime      int64      `json:"startTime"`
	Duration       int64      `json:"duration"`
	IdleDurationMs int64      `json:"idleDurationMs"`
	Debug          *MoveDebug `json:"debug,omitempty"`
}

// MoveDebug carries release-time values for cross-checking a replay.
// A minimal replay does not need it.
type MoveDebug struct {
	StickTip       float64 `json:"stickTip"`
	PlatformX      float64 `json:"platformX"`
	PlatformWidth  float64 `json:"platformWidth"`
	PlatformMinX   float64 `json:"platformMinX"`
	PlatformMaxX   float64 `json:"platformMaxX"`
	PlatformMoving bool    `json:"platformMoving"`
}

// ReleaseTime returns the engine time at which the stick was dropped.
func (m Move) ReleaseTime() int64 {
	return m.StartTime + m.Duration
}

// RunData is everything needed to replay a session.
type RunData struct {
	Seed  uint32 `json:"seed"`
	Moves []Move `json:"moves"`
}

// Clone returns a deep copy.
func (r RunData) Clone() RunData {
	return RunData{Seed: r.Seed, Moves: cloneMoves(r.Moves)}
}

// Recorder owns the engine clock and the move log.
type Recorder struct {
	seed  uint32
	clock float64 // Milliseconds, advanced only by Advance
	moves []Move
}

// NewRecorder starts an empty log for seed.
func NewRecorder(seed uint32) *Recorder {
	return &Recorder{seed: seed, moves: make([]Move, 0, 64)}
}

// Advance moves the clock forward by dt seconds.
func (r *Recorder) Advance(dt float64) {
	r.clock += dt * 1000
}

// NowMs returns the clock floored to whole milliseconds.
func (r *Recorder) NowMs() int64 {
	return int64(math.Floor(r.clock))
}

// Append records a completed gesture.
func (r *Recorder) Append(m Move) {
	if m.Debug != nil {
		d := *m.Debug
		m.Debug = &d
	}
	r.moves = append(r.moves, m)
}

// Len returns the number of recorded moves.
func (r *Recorder) Len() int {
	return len(r.moves)
}

// RunData returns an immutable snapshot of the log.
func (r *Recorder) RunData() RunData {
	return RunData{Seed: r.seed, Moves: cloneMoves(r.moves)}
}

func cloneMoves(src []Move) []Move {
	out := make([]Move, len(src))
	for i, m := range src {
		if m.Debug != nil {
			d := *m.Debug
			m.Debug = &d
		}
		out[i] = m
	}
	return out
}
