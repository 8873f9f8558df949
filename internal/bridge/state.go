package bridge

// Phase is the engine's state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGrowing
	PhaseRotating
	PhaseWalking
	PhaseScrolling
	PhaseFalling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseGrowing:
		return "GROWING"
	case PhaseRotating:
		return "ROTATING"
	case PhaseWalking:
		return "WALKING"
	case PhaseScrolling:
		return "SCROLLING"
	case PhaseFalling:
		return "FALLING"
	default:
		return "UNKNOWN"
	}
}

// State is the authoritative scoring state of a run.
type State struct {
	Phase          Phase
	Score          int
	Streak         int  // Consecutive perfect landings
	BestStreak     int
	Perfects       int
	Landings       int
	Revived        bool // The free ad revive has been used
	AwaitingRevive bool // A revivePrompt was emitted and not yet resolved
	Over           bool // A gameOver was emitted
}

// RenderState is a value snapshot for renderers. Mutating it has no effect on the engine.
type RenderState struct {
	Phase     Phase
	CameraX   float64
	Shake     float64
	Hero      Hero
	Stick     Stick
	StickX    float64 // Stick pivot, the current platform's right edge
	Platforms []Platform
	Score     int
	Streak    int
}
