// Package report persists per-run, per-file processing outcomes in SQLite.
// The output CSV only says which works succeeded; this store keeps the
// distinction between a missing local file, an unextractable document and an
// unexpected failure, which the CSV deliberately does not carry.
package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// File statuses.
const (
	StatusTokenized     = "tokenized"
	StatusMissing       = "missing"
	StatusUnextractable = "unextractable"
	StatusFailed        = "failed"
)

type Store struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database at the given path.
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the report database at path.
func Open(path string) (*Store, error) {
	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		DB:   sqlDB,
		path: path,
	}

	if err := s.ensureSchemaExists(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// ensureSchemaExists checks if the schema exists and initializes it if not.
func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return s.InitSchema()
	}

	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}

	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InitSchema initializes the database schema.
func (s *Store) InitSchema() error {
	_, err := s.Exec(schema)
	return err
}

// BeginRun records the start of a corpus build and returns its run ID.
func (s *Store) BeginRun(sourceCSV string) (int64, error) {
	res, err := s.Exec("INSERT INTO runs (source_csv) VALUES (?)", sourceCSV)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// Counts summarizes one run's outcomes.
type Counts struct {
	Visited       int
	Tokenized     int
	Missing       int
	Unextractable int
	Failed        int
}

// FinishRun stamps the run's end time and final counters.
func (s *Store) FinishRun(runID int64, c Counts) error {
	_, err := s.Exec(`
		UPDATE runs
		SET finished_at = CURRENT_TIMESTAMP,
		    visited = ?, tokenized = ?, missing = ?, unextractable = ?, failed = ?
		WHERE run_id = ?
	`, c.Visited, c.Tokenized, c.Missing, c.Unextractable, c.Failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// RecordFile stores the outcome of one visited FileID.
func (s *Store) RecordFile(runID int64, fileID, status, reason, outputFile, language string) error {
	_, err := s.Exec(`
		INSERT INTO files (run_id, file_id, status, reason, output_file, language)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, fileID, status, reason, outputFile, language)
	if err != nil {
		return fmt.Errorf("failed to record file %s: %w", fileID, err)
	}
	return nil
}

// Run is one row of the runs table.
type Run struct {
	RunID      int64
	StartedAt  time.Time
	FinishedAt sql.NullTime
	SourceCSV  string
	Counts     Counts
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.Query(`
		SELECT run_id, started_at, finished_at, source_csv,
		       visited, tokenized, missing, unextractable, failed
		FROM runs ORDER BY run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.SourceCSV,
			&r.Counts.Visited, &r.Counts.Tokenized, &r.Counts.Missing,
			&r.Counts.Unextractable, &r.Counts.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FileRecord is one row of the files table.
type FileRecord struct {
	FileID     string
	Status     string
	Reason     string
	OutputFile string
	Language   string
}

// RunFiles returns every file outcome of one run, optionally filtered by
// status. Order is the order the driver visited them in.
func (s *Store) RunFiles(runID int64, status string) ([]FileRecord, error) {
	query := `
		SELECT file_id, status, COALESCE(reason, ''), COALESCE(output_file, ''), COALESCE(language, '')
		FROM files WHERE run_id = ?`
	args := []interface{}{runID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY file_row_id"

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.FileID, &f.Status, &f.Reason, &f.OutputFile, &f.Language); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, f)
	}
	return records, rows.Err()
}
