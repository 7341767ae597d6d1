// Package storage provides SQLite-based persistence for finished
// simulation runs. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/physics"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry records one finished simulation run: the full scenario
// parameters plus the outcome, enough to reproduce the run exactly.
type RunEntry struct {
	ID    int64
	Label string // Preset ID or "custom"

	Wall                                                 float64
	LeftPosition, LeftMass, LeftVelocity, LeftLength     float64
	RightPosition, RightMass, RightVelocity, RightLength float64

	Collisions       int
	WallBounces      int
	Impacts          int
	SmallestInterval float64
	DurationMs       int64

	CreatedAt time.Time
}

// NewRunEntry assembles an entry from a scenario and its result.
func NewRunEntry(label string, cfg config.ScenarioConfig, res *physics.Result) RunEntry {
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
		Collisions:       res.Collisions,
		WallBounces:      res.WallBounces,
		Impacts:          res.Impacts,
		SmallestInterval: res.SmallestInterval,
		DurationMs:       res.Elapsed.Milliseconds(),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			wall REAL NOT NULL,
			left_position REAL NOT NULL,
			left_mass REAL NOT NULL,
			left_velocity REAL NOT NULL,
			left_length REAL NOT NULL,
			right_position REAL NOT NULL,
			right_mass REAL NOT NULL,
			right_velocity REAL NOT NULL,
			right_length REAL NOT NULL,
			collisions INTEGER NOT NULL,
			wall_bounces INTEGER NOT NULL,
			impacts INTEGER NOT NULL,
			smallest_interval REAL NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_label ON runs(label);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(collisions DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const runColumns = `id, label, wall,
	left_position, left_mass, left_velocity, left_length,
	right_position, right_mass, right_velocity, right_length,
	collisions, wall_bounces, impacts, smallest_interval, duration_ms, created_at`

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (label, wall,
		  left_position, left_mass, left_velocity, left_length,
		  right_position, right_mass, right_velocity, right_length,
		  collisions, wall_bounces, impacts, smallest_interval, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Label, e.Wall,
		e.LeftPosition, e.LeftMass, e.LeftVelocity, e.LeftLength,
		e.RightPosition, e.RightMass, e.RightVelocity, e.RightLength,
		e.Collisions, e.WallBounces, e.Impacts, e.SmallestInterval, e.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// TopRuns retrieves the runs with the highest event counts.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY collisions DESC, id DESC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a single run, or nil if it does not exist.
func (s *Store) RunByID(id int64) (*RunEntry, error) {
	entries, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// queryRuns executes a SELECT over runColumns and scans the rows.
func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Label, &e.Wall,
			&e.LeftPosition, &e.LeftMass, &e.LeftVelocity, &e.LeftLength,
			&e.RightPosition, &e.RightMass, &e.RightVelocity, &e.RightLength,
			&e.Collisions, &e.WallBounces, &e.Impacts, &e.SmallestInterval, &e.DurationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	RunCount      int
	MaxCollisions int
	AvgCollisions float64
	LastRun       time.Time
}

// GetStats retrieves aggregate statistics for the whole run history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(collisions), 0), COALESCE(AVG(collisions), 0) FROM runs`,
	).Scan(&stats.RunCount, &stats.MaxCollisions, &stats.AvgCollisions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

// Scenario reconstructs the scenario configuration stored in an entry,
// using defaults for playback and limit settings.
func (e RunEntry) Scenario() config.ScenarioConfig {
	cfg := config.DefaultScenario()
	cfg.Wall = e.Wall
	cfg.Left = config.BoxConfig{
		Position: e.LeftPosition,
		Mass:     e.LeftMass,
		Velocity: e.LeftVelocity,
		Length:   e.LeftLength,
	}
	cfg.Right = config.BoxConfig{
		Position: e.RightPosition,
		Mass:     e.RightMass,
		Velocity: e.RightVelocity,
		Length:   e.RightLength,
	}
	return cfg
}
