// Package store mirrors the CSV output into a local SQLite database,
// for runs where the samples are queried afterwards instead of being
// post-processed from files.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mumbaisim/element"
	"mumbaisim/recorder"
)

const schema = `
CREATE TABLE IF NOT EXISTS samples (
	timestamp     REAL    NOT NULL,
	step          INTEGER NOT NULL,
	vehicle_id    TEXT    NOT NULL,
	type          TEXT    NOT NULL,
	x             REAL    NOT NULL,
	y             REAL    NOT NULL,
	speed         REAL    NOT NULL,
	acceleration  REAL    NOT NULL,
	angle         REAL    NOT NULL,
	lane_id       TEXT    NOT NULL,
	hazard_active INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS hazard_events (
	timestamp   REAL NOT NULL,
	hazard_name TEXT NOT NULL,
	metadata    TEXT NOT NULL
);`

var _ recorder.Sink = (*SQLiteStore)(nil)

// SQLiteStore writes sensor samples and hazard events to SQLite.
// Like the CSV writer it is best-effort: failed inserts are logged
// and dropped, never surfaced to the simulation loop.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures
// the schema exists. Parent directories are created as well.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite works best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// WriteData inserts one row per reading inside a single transaction,
// stamped with the shared simulation time and step. An empty batch is
// a no-op.
func (s *SQLiteStore) WriteData(readings []element.SensorReading, state recorder.SimState) {
	if len(readings) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("error starting sample transaction", "error", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO samples
		(timestamp, step, vehicle_id, type, x, y, speed, acceleration, angle, lane_id, hazard_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		slog.Error("error preparing sample insert", "error", err)
		_ = tx.Rollback()
		return
	}
	defer func() { _ = stmt.Close() }()

	ts := state.SimulationTime()
	step := state.Step()
	for _, r := range readings {
		if _, err := stmt.Exec(ts, step, r.VehicleID, r.Type,
			r.X, r.Y, r.Speed, r.Acceleration, r.Angle, r.LaneID,
			boolToInt(r.HazardActive)); err != nil {
			slog.Error("error inserting sample", "vehicle", r.VehicleID, "error", err)
			_ = tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("error committing sample batch", "error", err)
	}
}

// WriteHazardEvent inserts one hazard event row. Metadata uses the
// same textual rendering as the CSV output.
func (s *SQLiteStore) WriteHazardEvent(event element.HazardEvent) {
	name := event.Name
	if name == "" {
		name = "unknown"
	}

	_, err := s.db.Exec(`INSERT INTO hazard_events (timestamp, hazard_name, metadata) VALUES (?, ?, ?)`,
		event.Timestamp, name, recorder.FormatMetadata(event.Metadata))
	if err != nil {
		slog.Error("error inserting hazard event", "name", name, "error", err)
	}
}

// SampleCount returns the number of stored sensor samples.
func (s *SQLiteStore) SampleCount() (int, error) {
	return s.count("samples")
}

// EventCount returns the number of stored hazard events.
func (s *SQLiteStore) EventCount() (int, error) {
	return s.count("hazard_events")
}

func (s *SQLiteStore) count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
