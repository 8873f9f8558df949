package config

import (
	_ "embed"
)

//go:embed defaults/bridge.yaml
var defaultBridgeYAML []byte

// DefaultBridgeConfig returns the built-in bridge configuration.
// It mirrors defaults/bridge.yaml and is used if the embedded file cannot be parsed.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		Viewport: ViewportConfig{
			Width:  400,
			Height: 700,
		},
		Platforms: PlatformConfig{
			Height:     200,
			StartX:     40,
			StartWidth: 80,
			MinWidth:   30,
			MaxWidth:   100,
			MinGap:     50,
			MaxGap:     160,
		},
		Moving: MovingConfig{
			Probability: 0.35,
			FromIndex:   2,
			MinSpeed:    40,
			MaxSpeed:    90,
			MinRange:    10,
			MaxRange:    30,
			SafeGap:     15,
		},
		Stick: StickConfig{
			GrowSpeed:       400,
			MaxLength:       600,
			RotateSpeed:     300,
			FallRotateSpeed: 360,
		},
		Hero: HeroConfig{
			Width:      20,
			Height:     28,
			Inset:      4,
			WalkSpeed:  280,
			Gravity:    2200,
			Spin:       540,
			FallMargin: 120,
		},
		Camera: CameraConfig{
			ScrollRate:  10,
			GrowShake:   1.5,
			ImpactShake: 6,
			ShakeDecay:  40,
		},
		Scoring: ScoringConfig{
			PerfectTolerance: 5,
			PerfectPoints:    3,
			HitPoints:        1,
		},
		Replay: ReplayConfig{
			RecordDebug: true,
			MaxMoves:    5000,
			MaxIdleMs:   300000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "index",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				ProbabilityBoost: 0.3,
				SpeedMultiplier:  0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBridgeYAML
}
