// Package sqlite persists analysis runs and their conflict events so
// planners can compare deconfliction runs after parameter changes.
//
// The schema is bootstrapped inline on open; the store is a per-project
// artifact, not a long-lived migrated database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/conflict.report/internal/detect"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	duration_millis INTEGER NOT NULL,
	vehicle_count INTEGER NOT NULL,
	event_count INTEGER NOT NULL,
	params_json TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS conflict_events (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	conflict_type TEXT NOT NULL,
	severity TEXT NOT NULL,
	vehicle1_id TEXT NOT NULL,
	vehicle2_id TEXT NOT NULL,
	time1 DOUBLE NOT NULL,
	time2 DOUBLE NOT NULL,
	x1 DOUBLE NOT NULL, y1 DOUBLE NOT NULL, z1 DOUBLE NOT NULL,
	x2 DOUBLE NOT NULL, y2 DOUBLE NOT NULL, z2 DOUBLE NOT NULL,
	distance DOUBLE NOT NULL,
	time_offset DOUBLE NOT NULL,
	PRIMARY KEY (run_id, seq),
	FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_conflict_events_run ON conflict_events(run_id);
`

// AnalysisRun is one persisted deconfliction run.
type AnalysisRun struct {
	ID             string
	StartedAt      time.Time
	DurationMillis int64
	VehicleCount   int
	EventCount     int
	Params         detect.Params
}

// NewRun stamps a fresh run record with a UUID and start time.
func NewRun(vehicleCount int, params detect.Params) AnalysisRun {
	return AnalysisRun{
		ID:           uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		VehicleCount: vehicleCount,
		Params:       params,
	}
}

// Store manages run and event persistence.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the conflict database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conflict database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its events in one transaction.
func (s *Store) SaveRun(run AnalysisRun, events []detect.Event) error {
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal run params: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO analysis_runs (run_id, started_at, duration_millis, vehicle_count, event_count, params_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.DurationMillis, run.VehicleCount, len(events), string(paramsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO conflict_events (run_id, seq, conflict_type, severity, vehicle1_id, vehicle2_id,
		 time1, time2, x1, y1, z1, x2, y2, z2, distance, time_offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range events {
		_, err := stmt.Exec(
			run.ID, i, string(ev.Type), string(ev.Severity), ev.Vehicle1, ev.Vehicle2,
			ev.Time1, ev.Time2,
			ev.Pos1.X, ev.Pos1.Y, ev.Pos1.Z,
			ev.Pos2.X, ev.Pos2.Y, ev.Pos2.Z,
			ev.Distance, ev.TimeOffset,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event %d of run %s: %w", i, run.ID, err)
		}
	}

	return tx.Commit()
}

// GetRun fetches one run record by ID.
func (s *Store) GetRun(id string) (AnalysisRun, error) {
	var (
		run        AnalysisRun
		paramsJSON string
	)
	err := s.db.QueryRow(
		`SELECT run_id, started_at, duration_millis, vehicle_count, event_count, params_json
		 FROM analysis_runs WHERE run_id = ?`, id,
	).Scan(&run.ID, &run.StartedAt, &run.DurationMillis, &run.VehicleCount, &run.EventCount, &paramsJSON)
	if err != nil {
		return AnalysisRun{}, fmt.Errorf("failed to fetch run %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return AnalysisRun{}, fmt.Errorf("failed to decode params for run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT run_id, started_at, duration_millis, vehicle_count, event_count, params_json
		 FROM analysis_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var (
			run        AnalysisRun
			paramsJSON string
		)
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.DurationMillis,
			&run.VehicleCount, &run.EventCount, &paramsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunEvents fetches a run's events in report order.
func (s *Store) RunEvents(runID string) ([]detect.Event, error) {
	rows, err := s.db.Query(
		`SELECT conflict_type, severity, vehicle1_id, vehicle2_id,
		 time1, time2, x1, y1, z1, x2, y2, z2, distance, time_offset
		 FROM conflict_events WHERE run_id = ? ORDER BY seq`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for run %s: %w", runID, err)
	}
	defer rows.Close()

	var events []detect.Event
	for rows.Next() {
		var (
			ev       detect.Event
			typ, sev string
		)
		if err := rows.Scan(&typ, &sev, &ev.Vehicle1, &ev.Vehicle2,
			&ev.Time1, &ev.Time2,
			&ev.Pos1.X, &ev.Pos1.Y, &ev.Pos1.Z,
			&ev.Pos2.X, &ev.Pos2.Y, &ev.Pos2.Z,
			&ev.Distance, &ev.TimeOffset); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		ev.Type = detect.ConflictType(typ)
		ev.Severity = detect.Severity(sev)
		events = append(events, ev)
	}
	return events, rows.Err()
}
