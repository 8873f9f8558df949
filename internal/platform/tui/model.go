package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/core"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

// bannerSeconds is how long a landing banner stays up.
const bannerSeconds = 1.2

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one player's session.
type Model struct {
	engine *bridge.Engine
	submit *submit.Service
	screen *core.Screen
	fx     *Effects
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	inputFrame core.InputFrame
	lastTick   time.Time
	frame      int
	paused     bool

	best      int
	submitted bool // Current run has been handed to the submit service
	receipt   *submit.Receipt
	err       error

	banner    string
	bannerTTL float64

	wantScores bool
	quitting   bool
}

// NewModel creates a session that verifies runs through svc.
func NewModel(svc *submit.Service, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.RandomSeed {
		cfg.Seed = newSeed()
	}

	fx := &Effects{}
	engine := bridge.New(svc.Config())
	engine.SetParticleEmitter(fx.Emit)
	seed := cfg.Seed
	//nolint:errcheck // Start only fails on a nil seed
	engine.Start(&seed)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		engine:     engine,
		submit:     svc,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		fx:         fx,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		best:       svc.Best(),
	}
}

// newSeed derives a run seed from the wall clock.
func newSeed() uint32 {
	n := uint64(time.Now().UnixNano())
	return uint32(n ^ n>>32)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues actions for the next tick. Quitting and screen switches
// are handled immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		st := m.engine.State()
		if !st.AwaitingRevive && !st.Over {
			m.paused = true
		}
		m.wantScores = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m = m.Abandon()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going and only resizes the buffer.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies queued input and steps the engine by the measured wall
// delta, capped so a stalled terminal cannot produce a huge step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameSeconds()
	if !m.lastTick.IsZero() {
		dt = core.ClampFrame(now.Sub(m.lastTick).Seconds())
	}
	m.lastTick = now
	m.frame++

	m.applyInput()

	for _, ev := range m.engine.Step(m.playing(), dt) {
		m.handleEvent(ev)
	}

	m.fx.Update(dt)
	if m.bannerTTL -= dt; m.bannerTTL <= 0 {
		m.banner = ""
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) playing() bool {
	st := m.engine.State()
	return !m.paused && !st.AwaitingRevive && !st.Over
}

func (m *Model) applyInput() {
	st := m.engine.State()

	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return
	}
	if m.inputFrame.Has(core.ActionPause) && !st.AwaitingRevive && !st.Over {
		m.paused = !m.paused
	}
	if m.inputFrame.Has(core.ActionRevive) {
		m.engine.Revive()
	}
	if m.inputFrame.Has(core.ActionPowerUp) && st.AwaitingRevive {
		m.engine.RevivePowerUp()
	}
	if m.inputFrame.Has(core.ActionPress) {
		switch m.engine.State().Phase {
		case bridge.PhaseIdle:
			m.engine.HandleInputDown(m.playing())
		case bridge.PhaseGrowing:
			m.engine.HandleInputUp(m.playing())
		}
	}
}

func (m *Model) handleEvent(ev bridge.Event) {
	switch ev.Kind {
	case bridge.EventPerfect:
		m.showBanner("PERFECT!")
	case bridge.EventStreak:
		if ev.Value > 1 {
			m.showBanner(fmt.Sprintf("PERFECT x%d", ev.Value))
		}
	case bridge.EventRevivePrompt:
		m.banner = ""
	case bridge.EventGameOver:
		m.finish()
	}
}

func (m *Model) showBanner(text string) {
	m.banner = text
	m.bannerTTL = bannerSeconds
}

// finish submits the current run once. Runs without moves are skipped.
func (m *Model) finish() {
	if m.submitted {
		return
	}
	m.submitted = true

	run := m.engine.RunData()
	if len(run.Moves) == 0 {
		return
	}
	rc, err := m.submit.Submit(run, m.engine.State().Score)
	m.receipt = &rc
	m.err = err
	if rc.Ranked {
		m.best = max(m.best, rc.Claimed)
	}
}

// restart ends the current run and starts a new one. Declining a revive
// prompt by restarting still submits the run.
func (m *Model) restart() {
	if m.engine.State().AwaitingRevive {
		m.finish()
	}

	if m.config.RandomSeed {
		m.config.Seed = newSeed()
	}
	m.engine.ResetWithSeed(m.config.Seed)
	m.fx.Reset()
	m.paused = false
	m.submitted = false
	m.receipt = nil
	m.err = nil
	m.banner = ""
	m.best = m.submit.Best()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".bridge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("bridge_%d_%s.txt", m.engine.Seed(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the current frame into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()

	cfg := m.engine.Config()
	rs := m.engine.RenderState()
	jolt := 1.0
	if m.frame%2 == 1 {
		jolt = -1
	}
	proj := WorldProjection(m.screen, rs, cfg, jolt)
	DrawWorld(m.screen, rs, cfg, proj)
	m.fx.Draw(m.screen, proj)

	st := m.engine.State()
	hud := HUD{
		Score:  st.Score,
		Best:   m.best,
		Streak: st.Streak,
		Seed:   m.engine.Seed(),
		Preset: m.submit.Preset(),
		Banner: m.banner,
		Paused: m.paused,
		Prompt: st.AwaitingRevive,
		Over:   st.Over,
	}
	if m.receipt != nil {
		hud.Verdict = string(m.receipt.Verdict)
		hud.Verified = m.receipt.Verified
	}
	DrawHUD(m.screen, hud)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	st := m.engine.State()
	keys := m.keys
	keys.Revive.SetEnabled(st.AwaitingRevive)
	keys.PowerUp.SetEnabled(st.AwaitingRevive)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(keys))
}

// Receipt returns the outcome of the last submitted run, if any.
func (m Model) Receipt() (*submit.Receipt, error) {
	return m.receipt, m.err
}

// Engine exposes the running engine.
func (m Model) Engine() *bridge.Engine {
	return m.engine
}

// Abandon ends the session. A run waiting on a revive decision counts as
// declined and is submitted.
func (m Model) Abandon() Model {
	if m.engine.State().AwaitingRevive {
		m.finish()
	}
	return m
}

// IsQuitting returns true if the player asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// WantsScores reports whether the player asked for the scoreboard.
func (m Model) WantsScores() bool {
	return m.wantScores
}

// Resume clears a pending scoreboard request and restarts the wall clock so
// the time spent away does not turn into one large step.
func (m Model) Resume() Model {
	m.wantScores = false
	m.lastTick = time.Time{}
	return m
}

// Run starts the Bubble Tea program for a local player.
func Run(svc *submit.Service, store *storage.Store, cfg core.RuntimeConfig) error {
	session := NewSessionModel(svc, store, cfg)

	p := tea.NewProgram(
		session,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
