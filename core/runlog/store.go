// Package runlog records solve runs in a local SQLite database so answers
// can be compared across inputs and engine changes. Each run stores the
// digests of the input document, the walk endpoints, the mode, the answer
// and the wall time.
package runlog

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Almanac/core/errors"
	"github.com/FocuswithJustin/Almanac/core/sqlite"
)

// Modes a run can execute in.
const (
	ModeValues = "values"
	ModeRanges = "ranges"
)

const schemaRuns = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	input_sha256 TEXT NOT NULL,
	input_blake3 TEXT NOT NULL,
	mode         TEXT NOT NULL,
	source       TEXT NOT NULL,
	target       TEXT NOT NULL,
	answer       TEXT NOT NULL,
	duration_ms  INTEGER NOT NULL
)`

const schemaRunsIndex = `
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`

// Run is one recorded solve.
type Run struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	InputSHA256 string        `json:"input_sha256"`
	InputBLAKE3 string        `json:"input_blake3"`
	Mode        string        `json:"mode"`
	Source      string        `json:"source"`
	Target      string        `json:"target"`
	Answer      uint64        `json:"answer"`
	Duration    time.Duration `json:"duration"`
}

// Store is a run log backed by a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the run log at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	for _, stmt := range []string{schemaRuns, schemaRunsIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "initialize run log schema")
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. A missing ID gets a fresh UUID and a zero
// CreatedAt gets the current time; both fields are written back to run.
// Answers are stored as decimal text since they span the full uint64
// range.
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, created_at, input_sha256, input_blake3, mode, source, target, answer, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.InputSHA256,
		run.InputBLAKE3,
		run.Mode,
		run.Source,
		run.Target,
		strconv.FormatUint(run.Answer, 10),
		run.Duration.Milliseconds(),
	)
	return errors.Wrap(err, "record run")
}

// List returns the most recent runs, newest first. A limit of zero or less
// means no limit.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded.
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, input_sha256, input_blake3, mode, source, target, answer, duration_ms
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, input_sha256, input_blake3, mode, source, target, answer, duration_ms
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("run", id)
		}
		return nil, err
	}
	return run, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run        Run
		createdAt  string
		answer     string
		durationMS int64
	)
	err := sc.Scan(
		&run.ID,
		&createdAt,
		&run.InputSHA256,
		&run.InputBLAKE3,
		&run.Mode,
		&run.Source,
		&run.Target,
		&answer,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, errors.Wrap(err, "parse run timestamp")
	}
	run.Answer, err = strconv.ParseUint(answer, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse run answer")
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
