// CLAUDE:SUMMARY SQLite output store: one row per cleaned facility plus ranked type summaries, grouped by pipeline run.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hazyhaar/facility-census/pkg/facility"
	_ "modernc.org/sqlite"
)

// Metric names stored in type_summaries.
const (
	MetricAvgBeds     = "avg_beds"
	MetricAvgFootfall = "avg_footfall"
)

// Run represents a row from the runs table.
type Run struct {
	ID        string
	Source    string
	Profile   string
	Rows      int
	CreatedAt int64
}

// Store manages the runs, facilities and type_summaries tables.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	profile     TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS facilities (
	run_id              TEXT NOT NULL REFERENCES runs(run_id),
	row_no              INTEGER NOT NULL,
	city                TEXT NOT NULL DEFAULT '',
	zone                TEXT NOT NULL DEFAULT '',
	ward                TEXT NOT NULL DEFAULT '',
	facility_name       TEXT NOT NULL DEFAULT '',
	type                TEXT NOT NULL,
	facility_class      TEXT NOT NULL DEFAULT '',
	beds_count          INTEGER,
	monthly_footfall    REAL,
	pharmacy_available  TEXT NOT NULL DEFAULT '',
	ambulance_available TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, row_no)
);
CREATE TABLE IF NOT EXISTS type_summaries (
	run_id  TEXT NOT NULL REFERENCES runs(run_id),
	metric  TEXT NOT NULL,
	rank    INTEGER NOT NULL,
	type    TEXT NOT NULL,
	value   REAL NOT NULL,
	PRIMARY KEY (run_id, metric, rank)
);`

// Open opens (or creates) the SQLite database at path and ensures the
// tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists the cleaned records and both rankings of res in one
// transaction and returns the new run ID.
func (s *Store) SaveRun(ctx context.Context, source, profile string, res *facility.Result) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source, profile, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, source, profile, len(res.Records), time.Now().Unix(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO facilities
		(run_id, row_no, city, zone, ward, facility_name, type, facility_class,
		 beds_count, monthly_footfall, pharmacy_available, ambulance_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare facilities: %w", err)
	}
	defer stmt.Close()

	for i, rec := range res.Records {
		if _, err := stmt.ExecContext(ctx, runID, i+1, rec.City, rec.Zone, rec.Ward,
			rec.FacilityName, rec.Type, rec.FacilityClass, rec.BedsCount, rec.MonthlyFootfall,
			rec.PharmacyAvailable, rec.AmbulanceAvailable); err != nil {
			return "", fmt.Errorf("insert facility %d: %w", i+1, err)
		}
	}

	if err := insertRanking(ctx, tx, runID, MetricAvgBeds, res.AvgBedsByType); err != nil {
		return "", err
	}
	if err := insertRanking(ctx, tx, runID, MetricAvgFootfall, res.AvgFootfallByType); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

func insertRanking(ctx context.Context, tx *sql.Tx, runID, metric string, r facility.Ranking) error {
	for i, e := range r {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO type_summaries (run_id, metric, rank, type, value) VALUES (?, ?, ?, ?, ?)`,
			runID, metric, i+1, e.Key, e.Value,
		); err != nil {
			return fmt.Errorf("insert %s rank %d: %w", metric, i+1, err)
		}
	}
	return nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, profile, row_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Profile, &r.Rows, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Ranking returns the stored ranking of a run for metric, in rank order.
func (s *Store) Ranking(ctx context.Context, runID, metric string) (facility.Ranking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, value FROM type_summaries WHERE run_id = ? AND metric = ? ORDER BY rank`,
		runID, metric)
	if err != nil {
		return nil, fmt.Errorf("ranking %s for %s: %w", metric, runID, err)
	}
	defer rows.Close()

	r := facility.Ranking{}
	for rows.Next() {
		var e facility.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		r = append(r, e)
	}
	return r, rows.Err()
}

// Records returns the stored facilities of a run in input order.
func (s *Store) Records(ctx context.Context, runID string) ([]facility.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT city, zone, ward, facility_name, type, facility_class,
		beds_count, monthly_footfall, pharmacy_available, ambulance_available
		FROM facilities WHERE run_id = ? ORDER BY row_no`, runID)
	if err != nil {
		return nil, fmt.Errorf("records for %s: %w", runID, err)
	}
	defer rows.Close()

	var records []facility.Record
	for rows.Next() {
		var rec facility.Record
		var beds sql.NullInt64
		var footfall sql.NullFloat64
		if err := rows.Scan(&rec.City, &rec.Zone, &rec.Ward, &rec.FacilityName, &rec.Type,
			&rec.FacilityClass, &beds, &footfall, &rec.PharmacyAvailable, &rec.AmbulanceAvailable); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		if beds.Valid {
			n := int(beds.Int64)
			rec.BedsCount = &n
		}
		if footfall.Valid {
			v := footfall.Float64
			rec.MonthlyFootfall = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
