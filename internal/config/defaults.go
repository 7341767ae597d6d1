package config

import (
	_ "embed"
)

//go:embed defaults/scenario.yaml
var defaultScenarioYAML []byte

// DefaultScenario returns the classic demonstration setup: a 1 kg box at
// rest in front of the wall, a 100 kg box approaching at 1 m/s. Produces
// 31 events.
func DefaultScenario() ScenarioConfig {
	return ScenarioConfig{
		Wall: 0,
		Left: BoxConfig{
			Position: 3,
			Mass:     1,
			Velocity: 0,
			Length:   1,
		},
		Right: BoxConfig{
			Position: 8,
			Mass:     100,
			Velocity: -1,
			Length:   1,
		},
		Animation: AnimationConfig{
			FPS:         60,
			TailSeconds: 5,
		},
		Limits: LimitsConfig{
			MaxEvents: 5_000_000,
		},
	}
}
