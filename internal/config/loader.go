package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBridge loads the bridge game configuration.
// Search order: customPath -> ~/.bridge/configs/bridge.yaml -> ./configs/bridge.yaml -> embedded default
func LoadBridge(customPath string) (BridgeConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultBridgeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bridge.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "bridge.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultBridgeConfig()
	if err := yaml.Unmarshal(defaultBridgeYAML, &embedded); err != nil {
		return DefaultBridgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable, malformed or invalid files are skipped.
func tryLoad(path string) (BridgeConfig, bool) {
	cfg := DefaultBridgeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bridge", "configs", filename)
}

// ApplyBridgePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyBridgePreset(cfg *BridgeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust landing and motion rules
	switch preset {
	case DifficultyEasy:
		cfg.Moving.Probability = 0
		cfg.Difficulty.Scaling.ProbabilityBoost = 0
		cfg.Scoring.PerfectTolerance = 8
	case DifficultyHard:
		cfg.Moving.Probability = 0.5
		cfg.Moving.FromIndex = 1
		cfg.Scoring.PerfectTolerance = 3
	}
}
