// Package store persists benchmark runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	_ "modernc.org/sqlite"

	"seededrand/internal/analysis"
	"seededrand/internal/bench"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	test_size   INTEGER NOT NULL,
	runs        INTEGER NOT NULL,
	concurrency INTEGER NOT NULL,
	generators  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id           TEXT NOT NULL REFERENCES runs(id),
	generator        TEXT NOT NULL,
	test_run         INTEGER NOT NULL,
	duration_ns      INTEGER NOT NULL,
	throughput       REAL NOT NULL,
	length           INTEGER NOT NULL,
	mean             REAL NOT NULL,
	chi_square       REAL NOT NULL,
	chi_square_p     REAL NOT NULL,
	min_freq         INTEGER NOT NULL,
	max_freq         INTEGER NOT NULL,
	shannon_entropy  REAL NOT NULL,
	autocorrelation  REAL NOT NULL,
	sample_file      TEXT NOT NULL,
	error            TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run_id ON results(run_id);
`

// ErrRunNotFound is returned when a run id has no stored results.
var ErrRunNotFound = errors.New("run not found")

// Run describes one harness invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	TestSize    int
	Runs        int
	Concurrency int
	Generators  []string
}

// NewRun creates a Run with a fresh id.
func NewRun(startedAt time.Time, testSize, runs, concurrency int, generators []string) Run {
	return Run{
		ID:          xid.New().String(),
		StartedAt:   startedAt,
		TestSize:    testSize,
		Runs:        runs,
		Concurrency: concurrency,
		Generators:  generators,
	}
}

// Store wraps a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores run and its results in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, results []bench.TestResult) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, test_size, runs, concurrency, generators) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), run.TestSize, run.Runs, run.Concurrency, strings.Join(run.Generators, ","),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results (
		run_id, generator, test_run, duration_ns, throughput, length, mean, chi_square,
		chi_square_p, min_freq, max_freq, shannon_entropy, autocorrelation, sample_file, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare results: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		errText := ""
		if r.Error != nil {
			errText = r.Error.Error()
		}
		a := r.Analysis
		_, err = stmt.ExecContext(ctx,
			run.ID, r.Name, r.TestRun, r.Duration.Nanoseconds(), r.Throughput, a.Length, a.Mean, a.ChiSquare,
			a.ChiSquarePValue, a.MinFreq, a.MaxFreq, a.ShannonEntropy, a.Autocorrelation, r.Filename, errText,
		)
		if err != nil {
			return fmt.Errorf("insert result %s run %d: %w", r.Name, r.TestRun, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, test_size, runs, concurrency, generators FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  int64
			generators string
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.TestSize, &run.Runs, &run.Concurrency, &generators); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, startedAt)
		if generators != "" {
			run.Generators = strings.Split(generators, ",")
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Results returns the stored results of a run in generator, run order.
// Stored errors come back as plain error values carrying the message.
func (s *Store) Results(ctx context.Context, runID string) ([]bench.TestResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		generator, test_run, duration_ns, throughput, length, mean, chi_square,
		chi_square_p, min_freq, max_freq, shannon_entropy, autocorrelation, sample_file, error
		FROM results WHERE run_id = ? ORDER BY generator, test_run`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results %s: %w", runID, err)
	}
	defer rows.Close()

	var results []bench.TestResult
	for rows.Next() {
		var (
			r          bench.TestResult
			a          analysis.Analysis
			durationNS int64
			errText    string
		)
		if err := rows.Scan(&r.Name, &r.TestRun, &durationNS, &r.Throughput, &a.Length, &a.Mean, &a.ChiSquare,
			&a.ChiSquarePValue, &a.MinFreq, &a.MaxFreq, &a.ShannonEntropy, &a.Autocorrelation, &r.Filename, &errText); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		a.FreqRange = a.MaxFreq - a.MinFreq
		r.Duration = time.Duration(durationNS)
		r.Analysis = a
		if errText != "" {
			r.Error = errors.New(errText)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return results, nil
}
