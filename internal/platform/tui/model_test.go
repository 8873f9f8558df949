package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/core"
	"github.com/vovakirdan/bridge-runner/internal/replay"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// driver feeds a model ticks spaced one nominal frame apart.
type driver struct {
	t   *testing.T
	m   tea.Model
	now time.Time
}

func newDriver(t *testing.T, m tea.Model) *driver {
	return &driver{t: t, m: m, now: time.Unix(1_700_000_000, 0)}
}

func (d *driver) send(msg tea.Msg) {
	d.t.Helper()
	d.m, _ = d.m.Update(msg)
}

func (d *driver) tick(n int) {
	d.t.Helper()
	for range n {
		d.now = d.now.Add(time.Second / 60)
		d.send(TickMsg(d.now))
	}
}

func (d *driver) model() Model {
	d.t.Helper()
	switch m := d.m.(type) {
	case Model:
		return m
	case SessionModel:
		return m.game
	}
	d.t.Fatalf("unexpected model type %T", d.m)
	return Model{}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	svc := submit.New(config.DefaultBridgeConfig(), "normal", store, nil)
	return NewModel(svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
}

func TestModelPressTogglesStick(t *testing.T) {
	d := newDriver(t, newTestModel(t, nil))
	d.tick(1)

	d.send(spaceKey)
	d.tick(1)
	if phase := d.model().Engine().State().Phase; phase != bridge.PhaseGrowing {
		t.Fatalf("phase after first press = %s, expected GROWING", phase)
	}

	d.tick(20)
	d.send(spaceKey)
	d.tick(1)
	e := d.model().Engine()
	if phase := e.State().Phase; phase != bridge.PhaseRotating {
		t.Fatalf("phase after second press = %s, expected ROTATING", phase)
	}
	if n := len(e.RunData().Moves); n != 1 {
		t.Errorf("recorded %d moves, expected 1", n)
	}
}

func TestModelPauseFreezesClock(t *testing.T) {
	d := newDriver(t, newTestModel(t, nil))
	d.tick(5)

	d.send(runeKey('p'))
	d.tick(1)
	before := d.model().Engine().EngineTimeMs()
	d.tick(30)
	if after := d.model().Engine().EngineTimeMs(); after != before {
		t.Errorf("engine clock moved from %d to %d while paused", before, after)
	}
	if !strings.Contains(d.m.View(), "PAUSED") {
		t.Error("paused view should say so")
	}

	d.send(runeKey('p'))
	d.tick(3)
	if d.model().Engine().EngineTimeMs() == before {
		t.Error("engine clock did not resume after unpausing")
	}
}

func TestModelStallIsClamped(t *testing.T) {
	d := newDriver(t, newTestModel(t, nil))
	d.tick(1)
	before := d.model().Engine().EngineTimeMs()

	d.now = d.now.Add(5 * time.Second)
	d.send(TickMsg(d.now))

	step := d.model().Engine().EngineTimeMs() - before
	if limit := int64(core.MaxFrameSeconds*1000) + 1; step > limit {
		t.Errorf("a 5s stall advanced the engine by %dms, expected at most %dms", step, limit)
	}
}

func TestModelSubmitsOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	d := newDriver(t, newTestModel(t, store))
	d.tick(1)

	// A one-frame press cannot reach any platform, and with no score there is
	// no revive prompt
	d.send(spaceKey)
	d.tick(1)
	d.send(spaceKey)
	d.tick(300)

	m := d.model()
	if !m.Engine().State().Over {
		t.Fatalf("run did not end, phase %s", m.Engine().State().Phase)
	}
	rc, err := m.Receipt()
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}
	if rc == nil || rc.Verdict != replay.VerdictOK || rc.RunID == "" {
		t.Fatalf("receipt = %+v, expected a stored ok run", rc)
	}
	if rc.Ranked {
		t.Error("a zero score should not be ranked")
	}
	if !strings.Contains(d.m.View(), "GAME OVER") {
		t.Error("game over view should say so")
	}

	d.send(runeKey('r'))
	d.tick(1)
	m = d.model()
	if rc, _ := m.Receipt(); rc != nil {
		t.Error("restart should clear the receipt")
	}
	if n := len(m.Engine().RunData().Moves); n != 0 {
		t.Errorf("new run has %d moves, expected 0", n)
	}
	if m.Engine().Seed() != 42 {
		t.Errorf("fixed seed run restarted with seed %d", m.Engine().Seed())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if next.View() != "" {
		t.Error("View() after quitting should be empty")
	}
}

func TestSessionTogglesScoreboard(t *testing.T) {
	svc := submit.New(config.DefaultBridgeConfig(), "hard", nil, nil)
	session := NewSessionModel(svc, nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3})
	d := newDriver(t, session)
	d.tick(2)

	d.send(runeKey('s'))
	view := d.m.View()
	if !strings.Contains(view, "VERIFIED SCORES") || !strings.Contains(view, "Hard") {
		t.Fatalf("expected the hard scoreboard, got:\n%s", view)
	}
	if !d.model().paused {
		t.Error("opening the scoreboard should pause the run")
	}

	// Ticks keep flowing to the paused game underneath
	d.tick(5)

	d.send(escKey)
	if strings.Contains(d.m.View(), "VERIFIED SCORES") {
		t.Error("esc should close the scoreboard")
	}
	if d.model().WantsScores() {
		t.Error("scoreboard request should be cleared on return")
	}
}
