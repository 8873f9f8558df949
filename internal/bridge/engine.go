// Package bridge implements the deterministic bridge game simulation.
//
// The engine is a single-threaded state machine advanced by Step. All timing
// comes from the dt passed in, and every press-to-release gesture is recorded
// as a Move so that a run can be re-scored from its seed and move log alone.
package bridge

import (
	"errors"
	"math"

	"github.com/vovakirdan/bridge-runner/internal/config"
)

// ErrNoSeed is returned by Start and Reset when no seed is available.
var ErrNoSeed = errors.New("bridge: engine requires a seed")

// commit is the release-time snapshot that landing is judged against.
type commit struct {
	target  Platform
	landing Landing
}

// Engine owns the world for one run. It is not safe for concurrent use.
type Engine struct {
	cfg config.BridgeConfig

	seed    uint32
	started bool

	layout    *Layout
	rec       *Recorder
	platforms []Platform // [0] is under the hero, [1] is the target
	stick     Stick
	hero      Hero
	camera    Camera
	state     State

	pressStart int64
	idleStart  int64
	commit     commit
	resolved   bool // Terminal fall event already emitted

	emit ParticleEmitter
}

// New creates an engine with the given tuning. Call Start before stepping.
func New(cfg config.BridgeConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() config.BridgeConfig {
	return e.cfg
}

// Start seeds the engine and builds a fresh world.
func (e *Engine) Start(seed *uint32) error {
	if seed == nil {
		return ErrNoSeed
	}
	e.init(*seed)
	return nil
}

// Reset rebuilds the world with the current seed.
func (e *Engine) Reset() error {
	if !e.started {
		return ErrNoSeed
	}
	e.init(e.seed)
	return nil
}

// ResetWithSeed rebuilds the world with a new seed.
func (e *Engine) ResetWithSeed(seed uint32) {
	e.init(seed)
}

func (e *Engine) init(seed uint32) {
	e.seed = seed
	e.started = true
	e.layout = NewLayout(e.cfg, seed)
	e.rec = NewRecorder(seed)

	start, next := e.layout.Initial()
	e.platforms = []Platform{start, next}

	e.stick.Reset()
	e.hero.PlaceOn(start, e.cfg)
	e.camera.Reset(start.X - e.cfg.Platforms.StartX)
	e.state = State{Phase: PhaseIdle}

	e.pressStart = 0
	e.idleStart = 0
	e.commit = commit{}
	e.resolved = false
}

// Seed returns the seed of the current run.
func (e *Engine) Seed() uint32 {
	return e.seed
}

// Started reports whether the engine has been seeded.
func (e *Engine) Started() bool {
	return e.started
}

// EngineTimeMs returns the internal clock floored to milliseconds.
func (e *Engine) EngineTimeMs() int64 {
	if e.rec == nil {
		return 0
	}
	return e.rec.NowMs()
}

// SetParticleEmitter installs an optional visual side channel. Pass nil to remove it.
func (e *Engine) SetParticleEmitter(fn ParticleEmitter) {
	e.emit = fn
}

func (e *Engine) particle(kind ParticleKind, x, y float64, count int) {
	if e.emit != nil {
		e.emit(Particle{Kind: kind, X: x, Y: y, Count: count})
	}
}

// HandleInputDown starts growing the stick. Ignored outside IDLE.
func (e *Engine) HandleInputDown(isPlaying bool) {
	if !isPlaying || !e.started || e.state.Phase != PhaseIdle {
		return
	}
	e.state.Phase = PhaseGrowing
	e.pressStart = e.rec.NowMs()
	e.stick.Reset()
}

// HandleInputUp drops the stick and records the move. Ignored outside GROWING.
func (e *Engine) HandleInputUp(isPlaying bool) {
	if !isPlaying || !e.started || e.state.Phase != PhaseGrowing {
		return
	}

	sc := e.cfg.Stick
	duration := e.rec.NowMs() - e.pressStart
	if limit := sc.MaxDurationMs(); duration > limit {
		duration = limit
	}
	if duration < 0 {
		duration = 0
	}
	idle := e.pressStart - e.idleStart
	release := e.pressStart + duration

	// Snap to the recorded duration so a replay computes the same tip
	e.stick.Length = sc.LengthFor(duration)

	target := Freeze(e.platforms[1], release)
	e.platforms[1] = target
	landing := Judge(e.cfg.Scoring, e.platforms[0], target, e.stick.Length)
	e.commit = commit{target: target, landing: landing}

	m := Move{StartTime: e.pressStart, Duration: duration, IdleDurationMs: idle}
	if e.cfg.Replay.RecordDebug {
		m.Debug = &MoveDebug{
			StickTip:       landing.Tip,
			PlatformX:      target.X,
			PlatformWidth:  target.Width,
			PlatformMinX:   target.MinX,
			PlatformMaxX:   target.MaxX,
			PlatformMoving: target.MinX < target.MaxX,
		}
	}
	e.rec.Append(m)

	e.state.Phase = PhaseRotating
}

// Step advances the simulation by dt seconds and returns the events it produced.
// It does nothing unless isPlaying is set.
func (e *Engine) Step(isPlaying bool, dt float64) []Event {
	if !isPlaying || !e.started || !(dt > 0) {
		return nil
	}

	e.rec.Advance(dt)
	e.camera.Update(dt, e.cfg.Camera.ScrollRate, e.cfg.Camera.ShakeDecay)

	var events []Event
	switch e.state.Phase {
	case PhaseIdle:
		e.updatePlatforms(dt)

	case PhaseGrowing:
		e.updatePlatforms(dt)
		e.stick.Grow(dt, e.cfg.Stick.GrowSpeed, e.cfg.Stick.MaxLength)
		e.camera.Trigger(e.cfg.Camera.GrowShake)

	case PhaseRotating:
		if e.stick.Rotate(dt, e.cfg.Stick.RotateSpeed, 90) {
			e.camera.Trigger(e.cfg.Camera.ImpactShake)
			e.particle(ParticleDust, e.commit.landing.Tip, e.cfg.FloorY(), 8)
			e.state.Phase = PhaseWalking
			events = append(events, e.checkLanding()...)
		}

	case PhaseWalking:
		events = append(events, e.walk(dt)...)

	case PhaseScrolling:
		if e.camera.Converged() {
			e.advance()
		}

	case PhaseFalling:
		events = append(events, e.fall(dt)...)
	}
	return events
}

func (e *Engine) updatePlatforms(dt float64) {
	for i := range e.platforms {
		e.platforms[i].Update(dt)
	}
}

// checkLanding reports a perfect landing as soon as the stick lies flat.
// The outcome comes from the release-time commit, never from live positions.
func (e *Engine) checkLanding() []Event {
	l := e.commit.landing
	if !l.Perfect {
		return nil
	}
	y := e.cfg.FloorY()
	e.particle(ParticleSparkle, e.commit.target.Center(), y, 16)
	return []Event{{Kind: EventPerfect, X: l.Tip - e.camera.X, Y: y}}
}

func (e *Engine) walk(dt float64) []Event {
	e.hero.Walk(dt, e.cfg.Hero.WalkSpeed)

	l := e.commit.landing
	if l.Hit {
		if stand := StandX(e.commit.target, e.cfg.Hero); e.hero.X >= stand {
			e.hero.X = stand
			return e.handleSuccess()
		}
		return nil
	}

	// Leading edge reached the end of a stick that found no platform
	if e.hero.X+e.cfg.Hero.Width >= l.Tip {
		e.hero.X = l.Tip - e.cfg.Hero.Width
		e.startFall()
	}
	return nil
}

func (e *Engine) handleSuccess() []Event {
	l := e.commit.landing
	s := &e.state

	s.Score += l.Points
	s.Landings++
	if l.Perfect {
		s.Perfects++
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
	} else {
		s.Streak = 0
	}

	events := []Event{{Kind: EventScore, Value: s.Score}}
	if l.Perfect {
		events = append(events, Event{Kind: EventStreak, Value: s.Streak})
	}

	s.Phase = PhaseScrolling
	e.camera.ScrollTo(e.platforms[1].X - e.cfg.Platforms.StartX)
	return events
}

// advance retires the platform behind the hero and spawns the next target.
func (e *Engine) advance() {
	now := e.rec.NowMs()
	current := e.platforms[1]
	e.platforms = []Platform{current, e.layout.Next(current, now)}

	e.idleStart = now
	e.stick.Reset()
	e.hero.PlaceOn(current, e.cfg)
	e.state.Phase = PhaseIdle
}

func (e *Engine) startFall() {
	e.state.Phase = PhaseFalling
	e.state.Streak = 0
	e.hero.VelocityY = 0
	e.particle(ParticleDebris, e.hero.X+e.cfg.Hero.Width/2, e.cfg.FloorY(), 12)
}

func (e *Engine) fall(dt float64) []Event {
	if e.resolved {
		return nil
	}

	hc := e.cfg.Hero
	e.hero.Fall(dt, hc.Gravity, hc.Spin)
	e.stick.Rotate(dt, e.cfg.Stick.FallRotateSpeed, 180)

	if e.hero.Y <= e.cfg.Viewport.Height+hc.FallMargin {
		return nil
	}

	e.resolved = true
	if !e.state.Revived && e.state.Score > 0 {
		e.state.AwaitingRevive = true
		return []Event{{Kind: EventRevivePrompt, Value: e.state.Score}}
	}

	e.state.Over = true
	run := e.rec.RunData()
	return []Event{{Kind: EventGameOver, Value: e.state.Score, Seed: run.Seed, Moves: run.Moves}}
}

// Revive spends the run's single free revive. Valid only after a revive prompt.
func (e *Engine) Revive() {
	if !e.state.AwaitingRevive {
		return
	}
	e.state.Revived = true
	e.restoreRound()
}

// RevivePowerUp restores the hero after any resolved fall. Unlike Revive it
// leaves the free revive available for later in the run.
func (e *Engine) RevivePowerUp() {
	if !e.resolved {
		return
	}
	e.restoreRound()
}

// restoreRound puts the hero back on the safe platform. The target keeps its
// frozen position and the idle clock is not restamped.
func (e *Engine) restoreRound() {
	e.resolved = false
	e.state.AwaitingRevive = false
	e.state.Over = false
	e.stick.Reset()
	e.hero.PlaceOn(e.platforms[0], e.cfg)
	e.state.Phase = PhaseIdle
}

// State returns a copy of the scoring state.
func (e *Engine) State() State {
	return e.state
}

// RenderState returns a snapshot for renderers.
func (e *Engine) RenderState() RenderState {
	rs := RenderState{
		Phase:     e.state.Phase,
		CameraX:   e.camera.X,
		Shake:     e.camera.Shake,
		Hero:      e.hero,
		Stick:     e.stick,
		Platforms: append([]Platform(nil), e.platforms...),
		Score:     e.state.Score,
		Streak:    e.state.Streak,
	}
	if len(e.platforms) > 0 {
		rs.StickX = e.platforms[0].Right()
	}
	return rs
}

// RunData returns a deep copy of the seed and move log.
func (e *Engine) RunData() RunData {
	if e.rec == nil {
		return RunData{Moves: []Move{}}
	}
	return e.rec.RunData()
}

// Landing returns the outcome judged at the most recent release.
func (e *Engine) Landing() (Landing, bool) {
	if e.rec == nil || e.rec.Len() == 0 {
		return Landing{}, false
	}
	return e.commit.landing, true
}

// AngleRad converts a stick rotation in degrees to radians for renderers.
func AngleRad(deg float64) float64 {
	return deg * math.Pi / 180
}
