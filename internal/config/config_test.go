package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultBridgeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var fromYAML BridgeConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultBridgeConfig() {
		t.Errorf("embedded YAML and DefaultBridgeConfig() differ:\n%+v\n%+v", fromYAML, DefaultBridgeConfig())
	}
}

func TestLoadBridgeCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	data := []byte("stick:\n  grow_speed: 500\nscoring:\n  perfect_tolerance: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBridge(path)
	if err != nil {
		t.Fatalf("LoadBridge() failed: %v", err)
	}
	if cfg.Stick.GrowSpeed != 500 {
		t.Errorf("GrowSpeed = %v, expected 500", cfg.Stick.GrowSpeed)
	}
	if cfg.Scoring.PerfectTolerance != 4 {
		t.Errorf("PerfectTolerance = %v, expected 4", cfg.Scoring.PerfectTolerance)
	}
	// Untouched sections keep their defaults
	if cfg.Platforms != DefaultBridgeConfig().Platforms {
		t.Errorf("platforms should keep defaults, got %+v", cfg.Platforms)
	}
}

func TestLoadBridgeMissingCustomPath(t *testing.T) {
	_, err := LoadBridge(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadBridgeRejectsInvalidCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("platforms:\n  min_gap: 20\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBridge(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Code != "MOVING_OVERLAP" {
		t.Errorf("Code = %s, expected MOVING_OVERLAP", verr.Code)
	}
}

func TestValidateCatchesBadTuning(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BridgeConfig)
		code   string
	}{
		{"zero viewport", func(c *BridgeConfig) { c.Viewport.Width = 0 }, "VIEWPORT"},
		{"inverted widths", func(c *BridgeConfig) { c.Platforms.MaxWidth = 10 }, "PLATFORM_WIDTH"},
		{"inverted gaps", func(c *BridgeConfig) { c.Platforms.MaxGap = 10 }, "PLATFORM_GAP"},
		{"narrow platforms", func(c *BridgeConfig) { c.Hero.Width = 40 }, "HERO_FIT"},
		{"probability above one", func(c *BridgeConfig) { c.Moving.Probability = 1.5 }, "MOVING_PROBABILITY"},
		{"range overlaps", func(c *BridgeConfig) { c.Moving.MaxRange = 45 }, "MOVING_OVERLAP"},
		{"short stick", func(c *BridgeConfig) { c.Stick.MaxLength = 100 }, "STICK_REACH"},
		{"camera never scrolls", func(c *BridgeConfig) { c.Camera.ScrollRate = 0 }, "CAMERA"},
		{"negative shake decay", func(c *BridgeConfig) { c.Camera.ShakeDecay = -1 }, "CAMERA"},
		{"wide perfect zone", func(c *BridgeConfig) { c.Scoring.PerfectTolerance = 20 }, "PERFECT_TOLERANCE"},
		{"no moves allowed", func(c *BridgeConfig) { c.Replay.MaxMoves = 0 }, "REPLAY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBridgeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}
}

func TestStickDerivedValues(t *testing.T) {
	s := DefaultBridgeConfig().Stick

	if got := s.MaxDurationMs(); got != 1500 {
		t.Errorf("MaxDurationMs() = %d, expected 1500", got)
	}
	if got := s.LengthFor(250); got != 100 {
		t.Errorf("LengthFor(250) = %v, expected 100", got)
	}
	if got := s.LengthFor(10000); got != s.MaxLength {
		t.Errorf("LengthFor(10000) = %v, expected clamp to %v", got, s.MaxLength)
	}
}

func TestApplyBridgePreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		level       float64
		probability float64
	}{
		{DifficultyEasy, true, 0.0, 0},
		{DifficultyNormal, true, 0.3, 0.35},
		{DifficultyHard, true, 0.7, 0.5},
		{DifficultyFixed, false, 0.0, 0.35},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBridgeConfig()
			ApplyBridgePreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Moving.Probability != tc.probability {
				t.Errorf("Probability = %v, expected %v", cfg.Moving.Probability, tc.probability)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestDifficultyLevelByIndex(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "index", MaxAt: 10},
		Scaling:      ScalingConfig{ProbabilityBoost: 0.5, SpeedMultiplier: 1.0},
	})

	if got := d.Level(0); got != 0.2 {
		t.Errorf("Level(0) = %v, expected 0.2", got)
	}
	if got := d.Level(10); got != 1.0 {
		t.Errorf("Level(10) = %v, expected 1.0", got)
	}
	if got := d.Level(1000); got != 1.0 {
		t.Errorf("Level(1000) = %v, expected clamp to 1.0", got)
	}
	if got := d.MovingProbability(0.8, 10); got != 1.0 {
		t.Errorf("MovingProbability() = %v, expected clamp to 1.0", got)
	}
	if got := d.Speed(50, 10); got != 100 {
		t.Errorf("Speed() = %v, expected 100", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "index", MaxAt: 10},
	})

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(9); got != 0.4 {
		t.Errorf("Level() = %v, expected fixed 0.4", got)
	}
}
