package core

// RuntimeConfig contains what a host needs to start a session.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second the host steps the engine at
	Seed     uint32 // Layout seed, ignored when RandomSeed is set
	// RandomSeed asks the host to derive a fresh seed from the clock for
	// every run. Seeds are still recorded so runs stay replayable.
	RandomSeed bool
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		RandomSeed: true,
	}
}

// FrameSeconds returns the nominal frame duration.
func (c RuntimeConfig) FrameSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// MaxFrameSeconds caps a single engine step after a stall.
const MaxFrameSeconds = 0.1

// ClampFrame bounds a measured wall-clock delta to (0, MaxFrameSeconds].
func ClampFrame(dt float64) float64 {
	return ClampF(dt, 0, MaxFrameSeconds)
}
