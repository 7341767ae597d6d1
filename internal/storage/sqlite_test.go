package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/physics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// testEntry builds an entry for a scenario with the given label and right
// box mass, with small distinct outcome numbers.
func testEntry(label string, rightMass float64, collisions int) RunEntry {
	cfg := config.DefaultScenario()
	cfg.Right.Mass = rightMass
	return RunEntry{
		Label:            label,
		Wall:             cfg.Wall,
		LeftPosition:     cfg.Left.Position,
		LeftMass:         cfg.Left.Mass,
		LeftVelocity:     cfg.Left.Velocity,
		LeftLength:       cfg.Left.Length,
		RightPosition:    cfg.Right.Position,
		RightMass:        cfg.Right.Mass,
		RightVelocity:    cfg.Right.Velocity,
		RightLength:      cfg.Right.Length,
		Collisions:       collisions,
		WallBounces:      collisions / 2,
		Impacts:          collisions - collisions/2,
		SmallestInterval: 0.25,
		DurationMs:       3,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(testEntry("classic", 100, 31))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(testEntry("equal", 1, 3)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(testEntry("heavy", 10000, 314)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	entry, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if entry == nil {
		t.Fatal("RunByID() returned nil for existing run")
	}
	if entry.Label != "classic" || entry.Collisions != 31 {
		t.Errorf("RunByID() = %q with %d collisions, expected classic/31", entry.Label, entry.Collisions)
	}
	if entry.RightMass != 100 || entry.SmallestInterval != 0.25 {
		t.Errorf("Parameters not round-tripped: %+v", entry)
	}

	// Missing IDs return nil without error.
	missing, err := store.RunByID(99999)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Error("RunByID() for missing run should return nil")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(testEntry("equal", 1, 3))
	store.SaveRun(testEntry("heavy", 10000, 314))
	store.SaveRun(testEntry("classic", 100, 31))

	top, err := store.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(top) != 2 {
		t.Fatalf("Expected 2 runs with limit, got %d", len(top))
	}
	if top[0].Collisions != 314 || top[1].Collisions != 31 {
		t.Errorf("TopRuns() not ordered by collisions: %d, %d", top[0].Collisions, top[1].Collisions)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(testEntry("classic", 100, 31))
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	// Empty store
	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RunCount != 0 || stats.MaxCollisions != 0 {
		t.Errorf("Empty stats = %+v, expected zeros", stats)
	}

	store.SaveRun(testEntry("equal", 1, 3))
	store.SaveRun(testEntry("classic", 100, 31))

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RunCount != 2 {
		t.Errorf("RunCount = %d, expected 2", stats.RunCount)
	}
	if stats.MaxCollisions != 31 {
		t.Errorf("MaxCollisions = %d, expected 31", stats.MaxCollisions)
	}
	if stats.AvgCollisions != 17 {
		t.Errorf("AvgCollisions = %g, expected 17", stats.AvgCollisions)
	}
}

func TestRunEntryScenarioRoundTrip(t *testing.T) {
	store := openTestStore(t)

	// A stored run must reproduce its result when replayed.
	cfg := config.DefaultScenario()
	left, right, err := cfg.Bodies()
	if err != nil {
		t.Fatalf("Bodies() failed: %v", err)
	}
	res, err := physics.Run(left, right, cfg.Wall, cfg.Options())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	id, err := store.SaveRun(NewRunEntry("classic", cfg, res))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entry, err := store.RunByID(id)
	if err != nil || entry == nil {
		t.Fatalf("RunByID() failed: %v", err)
	}

	replay := entry.Scenario()
	left2, right2, err := replay.Bodies()
	if err != nil {
		t.Fatalf("Bodies() failed: %v", err)
	}
	res2, err := physics.Run(left2, right2, replay.Wall, replay.Options())
	if err != nil {
		t.Fatalf("replay Run() failed: %v", err)
	}

	if res2.Collisions != entry.Collisions {
		t.Errorf("replay produced %d collisions, stored %d", res2.Collisions, entry.Collisions)
	}
	if res2.SmallestInterval != entry.SmallestInterval {
		t.Errorf("replay smallest interval %g, stored %g", res2.SmallestInterval, entry.SmallestInterval)
	}
}
