package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/core"
)

func startedEngine(t *testing.T, seed uint32) *bridge.Engine {
	t.Helper()
	e := bridge.New(config.DefaultBridgeConfig())
	if err := e.Start(&seed); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestDrawWorldPlacesHeroAndPlatforms(t *testing.T) {
	e := startedEngine(t, 1)
	cfg := e.Config()
	rs := e.RenderState()
	screen := core.NewScreen(80, 23)

	proj := WorldProjection(screen, rs, cfg, 0)
	DrawWorld(screen, rs, cfg, proj)

	hx, hy := proj.Cell(rs.Hero.X+1, rs.Hero.Y+1)
	if c := screen.Get(hx, hy); c.Ch != '█' || c.Fg != core.ColorCyan {
		t.Errorf("hero cell = %q/%d, expected cyan block", c.Ch, c.Fg)
	}

	start := rs.Platforms[0]
	px, py := proj.Cell(start.X+1, cfg.FloorY()+1)
	if c := screen.Get(px, py); c.Ch != '█' || c.Fg != core.ColorGray {
		t.Errorf("platform cell = %q/%d, expected gray block", c.Ch, c.Fg)
	}

	target := rs.Platforms[1]
	mx, my := proj.Cell(target.Center(), cfg.FloorY())
	if c := screen.Get(mx, my); c.Ch != '▀' || c.Fg != core.ColorRed {
		t.Errorf("perfect marker = %q/%d, expected red half block", c.Ch, c.Fg)
	}

	// Row 0 belongs to the HUD and sits above the visible world
	for x := range screen.Width() {
		if screen.Get(x, 0).Ch != ' ' {
			t.Fatalf("world drew into the HUD row at column %d", x)
		}
	}
}

func TestDrawStick(t *testing.T) {
	e := startedEngine(t, 1)
	cfg := e.Config()
	rs := e.RenderState()
	rs.Stick = bridge.Stick{Length: 100, Rotation: 90}
	screen := core.NewScreen(80, 23)

	proj := WorldProjection(screen, rs, cfg, 0)
	DrawWorld(screen, rs, cfg, proj)

	x, y := proj.Cell(rs.StickX+50, cfg.FloorY()-0.01)
	if c := screen.Get(x, y); c.Ch != '━' || c.Fg != core.ColorYellow {
		t.Errorf("flat stick cell = %q/%d, expected yellow bar", c.Ch, c.Fg)
	}
}

func TestStickGlyph(t *testing.T) {
	tests := []struct {
		deg      float64
		expected rune
	}{
		{0, '│'},
		{45, '/'},
		{90, '━'},
		{135, '\\'},
		{180, '│'},
	}
	for _, tc := range tests {
		if got := stickGlyph(tc.deg); got != tc.expected {
			t.Errorf("stickGlyph(%v) = %q, expected %q", tc.deg, got, tc.expected)
		}
	}
}

func TestDrawHUD(t *testing.T) {
	tests := []struct {
		name     string
		hud      HUD
		expected []string
	}{
		{"playing", HUD{Score: 7, Best: 12, Streak: 3, Seed: 42, Preset: "hard"}, []string{"SCORE 7", "BEST 12", "PERFECT x3", "hard #42"}},
		{"prompt", HUD{Score: 4, Prompt: true}, []string{"YOU FELL", "[v] free revive"}},
		{"over", HUD{Score: 4, Over: true, Verdict: "ok", Verified: 4}, []string{"GAME OVER", "replay ok (4)"}},
		{"paused", HUD{Paused: true}, []string{"PAUSED"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := core.NewScreen(80, 23)
			DrawHUD(screen, tc.hud)
			out := screen.String()
			for _, want := range tc.expected {
				if !strings.Contains(out, want) {
					t.Errorf("HUD missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestEffectsExpire(t *testing.T) {
	fx := &Effects{}
	fx.Emit(bridge.Particle{Kind: bridge.ParticleSparkle, X: 100, Y: 500, Count: 16})
	fx.Emit(bridge.Particle{Kind: bridge.ParticleDust, X: 100, Y: 500, Count: 8})

	fx.Update(effectLife / 2)
	if fx.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", fx.Len())
	}

	screen := core.NewScreen(80, 23)
	fx.Draw(screen, core.Fit(0, 240, 400, 460, 80, 23))
	if !strings.ContainsRune(screen.String(), '*') {
		t.Error("sparkle burst drew nothing")
	}

	fx.Update(effectLife)
	if fx.Len() != 0 {
		t.Errorf("Len() = %d after expiry, expected 0", fx.Len())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	screen := core.NewScreen(12, 2)
	screen.DrawText(0, 0, "SCORE", core.ColorWhite)
	screen.DrawText(6, 0, "3", core.ColorYellow)
	screen.DrawText(0, 1, "bridge", core.ColorDefault)

	out := RenderScreen(screen)
	for _, want := range []string{"SCORE", "3", "bridge"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() lost %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", got)
	}
}
