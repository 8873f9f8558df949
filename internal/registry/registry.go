// Package registry lists the difficulty presets a run can be played under.
// Scores are ranked per preset, so hosts use this to validate names and to
// label leaderboard tabs.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/bridge-runner/internal/config"
)

// Preset is a named tuning applied on top of the loaded config.
type Preset struct {
	ID    string
	Title string
	Blurb string
	apply func(*config.BridgeConfig)
}

// Default is the preset used when none is given.
const Default = "normal"

var (
	presets []Preset
	byID    = make(map[string]int)
	mu      sync.RWMutex
)

func init() {
	for _, p := range []struct {
		preset config.DifficultyPreset
		title  string
		blurb  string
	}{
		{config.DifficultyEasy, "Easy", "no moving platforms, wide perfect zone"},
		{config.DifficultyNormal, "Normal", "platforms start moving from the third gap"},
		{config.DifficultyHard, "Hard", "movers from the first gap, tight perfect zone"},
		{config.DifficultyFixed, "Fixed", "config values as loaded, no progression"},
	} {
		preset := p.preset
		Register(string(preset), p.title, p.blurb, func(cfg *config.BridgeConfig) {
			config.ApplyBridgePreset(cfg, preset)
		})
	}
}

// Register adds a preset. Panics if the ID is already registered.
func Register(id, title, blurb string, apply func(*config.BridgeConfig)) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := byID[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}
	byID[id] = len(presets)
	presets = append(presets, Preset{ID: id, Title: title, Blurb: blurb, apply: apply})
}

// List returns all presets in registration order.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Preset(nil), presets...)
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := byID[id]
	return ok
}

// Build applies preset id to a copy of base and validates the result.
func Build(id string, base config.BridgeConfig) (config.BridgeConfig, error) {
	mu.RLock()
	i, ok := byID[id]
	var p Preset
	if ok {
		p = presets[i]
	}
	mu.RUnlock()

	if !ok {
		return base, fmt.Errorf("registry: unknown preset %q", id)
	}
	p.apply(&base)
	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("registry: preset %q: %w", id, err)
	}
	return base, nil
}
