package bridge

// EventKind identifies a semantic engine event.
type EventKind int

const (
	EventScore        EventKind = iota // Value is the new total score
	EventPerfect                       // X, Y are screen coordinates of the stick tip
	EventStreak                        // Value is the current perfect streak
	EventGameOver                      // Value, Seed and Moves describe the finished run
	EventRevivePrompt                  // Value is the score at the time of the fall
)

func (k EventKind) String() string {
	switch k {
	case EventScore:
		return "score"
	case EventPerfect:
		return "perfect"
	case EventStreak:
		return "streak"
	case EventGameOver:
		return "gameOver"
	case EventRevivePrompt:
		return "revivePrompt"
	default:
		return "unknown"
	}
}

// Event is returned from Step. Only the fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	Value int
	X, Y  float64
	Seed  uint32
	Moves []Move
}

// ParticleKind names a visual effect.
type ParticleKind string

const (
	ParticleDust    ParticleKind = "dust"    // Stick hits the ground
	ParticleSparkle ParticleKind = "sparkle" // Perfect landing
	ParticleDebris  ParticleKind = "debris"  // Hero starts to fall
)

// Particle is a request to spawn a visual effect at world coordinates.
type Particle struct {
	Kind  ParticleKind
	X, Y  float64
	Count int
}

// ParticleEmitter receives particle requests. The engine calls it synchronously
// and never retains it beyond the current run.
type ParticleEmitter func(Particle)
