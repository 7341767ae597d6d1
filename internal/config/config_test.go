package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okhotin/piblocks/internal/physics"
)

func TestDefaultScenarioMatchesEmbedded(t *testing.T) {
	// The embedded YAML and the hardcoded fallback must describe the same
	// scenario, or the search-order fallback silently changes behavior.
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := DefaultScenario()
	if loaded.Wall != want.Wall || loaded.Left != want.Left || loaded.Right != want.Right {
		t.Errorf("embedded default differs from hardcoded: %+v vs %+v", loaded, want)
	}
	if loaded.Animation != want.Animation || loaded.Limits != want.Limits {
		t.Errorf("embedded playback/limits differ: %+v vs %+v", loaded, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	data := []byte(`
wall: 1.5
left:
  position: 2
  mass: 3
  velocity: 0.5
  length: 1
right:
  position: 9
  mass: 42
  velocity: -2
  length: 2
animation:
  fps: 30
  tail_seconds: 2
limits:
  max_events: 100
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Wall != 1.5 {
		t.Errorf("Wall = %g, expected 1.5", cfg.Wall)
	}
	if cfg.Right.Mass != 42 || cfg.Right.Velocity != -2 {
		t.Errorf("Right box not loaded: %+v", cfg.Right)
	}
	if cfg.Animation.FPS != 30 || cfg.Limits.MaxEvents != 100 {
		t.Errorf("Animation/limits not loaded: %+v %+v", cfg.Animation, cfg.Limits)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestScenarioBodies(t *testing.T) {
	cfg := DefaultScenario()

	left, right, err := cfg.Bodies()
	if err != nil {
		t.Fatalf("Bodies() failed: %v", err)
	}

	if left.Mass() != 1 || right.Mass() != 100 {
		t.Errorf("masses = %g and %g, expected 1 and 100", left.Mass(), right.Mass())
	}
	if left.InitialPosition() != 3 || right.InitialPosition() != 8 {
		t.Errorf("positions = %g and %g, expected 3 and 8", left.InitialPosition(), right.InitialPosition())
	}

	// Invalid parameters surface the core's error kinds.
	cfg.Left.Mass = 0
	if _, _, err := cfg.Bodies(); err == nil {
		t.Error("Bodies() with zero mass should fail")
	}
}

func TestScenarioValidate(t *testing.T) {
	cfg := DefaultScenario()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults failed: %v", err)
	}

	overlap := DefaultScenario()
	overlap.Right.Position = 3.5
	if err := overlap.Validate(); !errors.Is(err, physics.ErrOverlap) {
		t.Errorf("Validate() with overlapping boxes = %v, expected ErrOverlap", err)
	}

	behindWall := DefaultScenario()
	behindWall.Wall = 5
	if err := behindWall.Validate(); !errors.Is(err, physics.ErrBoundary) {
		t.Errorf("Validate() with box behind wall = %v, expected ErrBoundary", err)
	}

	swapped := DefaultScenario()
	swapped.Left.Position, swapped.Right.Position = 8, 3
	if err := swapped.Validate(); !errors.Is(err, physics.ErrOrdering) {
		t.Errorf("Validate() with swapped boxes = %v, expected ErrOrdering", err)
	}
}

func TestPresets(t *testing.T) {
	list := ListPresets()
	if len(list) == 0 {
		t.Fatal("ListPresets() returned nothing")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Error("ListPresets() should be sorted by ID")
		}
	}

	if !PresetExists("classic") {
		t.Error("classic preset should exist")
	}
	if PresetExists("nope") {
		t.Error("unknown preset should not exist")
	}

	cfg := DefaultScenario()
	if err := ApplyPreset(&cfg, "heavy"); err != nil {
		t.Fatalf("ApplyPreset() failed: %v", err)
	}
	if cfg.Right.Mass != 10_000 {
		t.Errorf("heavy preset: right mass = %g, expected 10000", cfg.Right.Mass)
	}

	if err := ApplyPreset(&cfg, "nope"); err == nil {
		t.Error("ApplyPreset() with unknown ID should fail")
	}
}

func TestPresetEventCounts(t *testing.T) {
	// Presets advertise their event counts; hold them to it.
	counts := map[string]int{
		"equal":   3,
		"gentle":  6,
		"classic": 31,
		"heavy":   314,
	}

	for id, want := range counts {
		cfg := DefaultScenario()
		if err := ApplyPreset(&cfg, id); err != nil {
			t.Fatalf("ApplyPreset(%q) failed: %v", id, err)
		}

		left, right, err := cfg.Bodies()
		if err != nil {
			t.Fatalf("Bodies() failed: %v", err)
		}

		res, err := physics.Run(left, right, cfg.Wall, cfg.Options())
		if err != nil {
			t.Fatalf("Run(%q) failed: %v", id, err)
		}
		if res.Collisions != want {
			t.Errorf("preset %q: Collisions = %d, expected %d", id, res.Collisions, want)
		}
	}
}
