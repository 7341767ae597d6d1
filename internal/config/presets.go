package config

import (
	"fmt"
	"sort"
)

// Preset is a named scenario variant. Presets modify the default scenario
// rather than replacing it, so playback and limit settings carry over.
type Preset struct {
	ID          string
	Title       string
	Description string
	apply       func(*ScenarioConfig)
}

// The event count depends only on the mass ratio: floor(pi * sqrt(M/m))
// for a ratio of M/m, which is what makes the 100^n presets spell out
// digits of pi.
var presets = map[string]Preset{
	"classic": {
		ID:          "classic",
		Title:       "Classic (1 kg vs 100 kg)",
		Description: "The standard demonstration: 31 events",
		apply:       func(c *ScenarioConfig) { c.Right.Mass = 100 },
	},
	"equal": {
		ID:          "equal",
		Title:       "Equal masses (1 kg vs 1 kg)",
		Description: "Velocities exchange exactly: 3 events",
		apply:       func(c *ScenarioConfig) { c.Right.Mass = 1 },
	},
	"gentle": {
		ID:          "gentle",
		Title:       "Gentle (1 kg vs 4 kg)",
		Description: "A short run that is easy to follow: 6 events",
		apply:       func(c *ScenarioConfig) { c.Right.Mass = 4 },
	},
	"heavy": {
		ID:          "heavy",
		Title:       "Heavy (1 kg vs 10,000 kg)",
		Description: "One more digit of pi: 314 events",
		apply:       func(c *ScenarioConfig) { c.Right.Mass = 10_000 },
	},
	"colossal": {
		ID:          "colossal",
		Title:       "Colossal (1 kg vs 1,000,000 kg)",
		Description: "3141 events; playback gets busy near the wall",
		apply:       func(c *ScenarioConfig) { c.Right.Mass = 1_000_000 },
	},
}

// ListPresets returns all presets sorted by ID.
func ListPresets() []Preset {
	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// PresetExists checks if a preset with the given ID is defined.
func PresetExists(id string) bool {
	_, ok := presets[id]
	return ok
}

// ApplyPreset modifies the scenario according to the named preset.
// Returns an error for unknown preset IDs.
func ApplyPreset(cfg *ScenarioConfig, id string) error {
	p, ok := presets[id]
	if !ok {
		return fmt.Errorf("config: unknown preset %q", id)
	}
	p.apply(cfg)
	return nil
}
