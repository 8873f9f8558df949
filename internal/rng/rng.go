// Package rng provides the seeded pseudo-random generator used for level layout.
// It is a Mulberry32 counter generator: a pure function of a 32-bit state with
// no dependency on time or system entropy, so the same seed always yields the
// same sequence on every platform.
package rng

// Source is a Mulberry32 generator.
type Source struct {
	state uint32
	seed  uint32
	draws uint64
}

// New creates a generator seeded with seed.
func New(seed uint32) *Source {
	return &Source{state: seed, seed: seed}
}

// Seed returns the seed the generator was created with.
func (s *Source) Seed() uint32 {
	return s.seed
}

// Draws returns how many values have been consumed since creation.
func (s *Source) Draws() uint64 {
	return s.draws
}

// Float64 returns the next value in [0, 1) and advances the state.
func (s *Source) Float64() float64 {
	s.draws++
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Int returns an integer in [min, maxExclusive).
func Int(s *Source, min, maxExclusive int) int {
	return int(s.Float64()*float64(maxExclusive-min)) + min
}

// Range returns a float in [min, maxExclusive).
func Range(s *Source, min, maxExclusive float64) float64 {
	return s.Float64()*(maxExclusive-min) + min
}
