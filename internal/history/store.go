package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"contactsheet/internal/config"
)

// Status is the final outcome of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record summarizes one pipeline run.
type Record struct {
	ID           int64
	RunID        string
	InputPath    string
	OutputDir    string
	Interval     float64
	Duration     float64
	Thumbnails   int
	Status       Status
	FailedStage  string
	ErrorKind    string
	ErrorMessage string
	DocumentPath string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (r Record) Elapsed() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store manages the run ledger.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the ledger at the configured state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens or creates the ledger database at path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts a run summary and returns its row id.
func (s *Store) Append(ctx context.Context, rec Record) (int64, error) {
	if rec.RunID == "" {
		return 0, errors.New("run id required")
	}
	if rec.Status == "" {
		return 0, errors.New("status required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, input_path, output_dir, interval_seconds, duration_seconds,
            thumbnails, status, failed_stage, error_kind, error_message,
            document_path, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.InputPath,
		rec.OutputDir,
		rec.Interval,
		nullableFloat(rec.Duration),
		rec.Thumbnails,
		string(rec.Status),
		nullableString(rec.FailedStage),
		nullableString(rec.ErrorKind),
		nullableString(rec.ErrorMessage),
		nullableString(rec.DocumentPath),
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first. A non-positive limit returns
// every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, run_id, input_path, output_dir, interval_seconds, duration_seconds,
            thumbnails, status, failed_stage, error_kind, error_message,
            document_path, started_at, finished_at
        FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec                                  Record
		duration                             sql.NullFloat64
		status, started, finished            string
		failedStage, errorKind, errorMessage sql.NullString
		documentPath                         sql.NullString
	)
	if err := rows.Scan(
		&rec.ID, &rec.RunID, &rec.InputPath, &rec.OutputDir, &rec.Interval, &duration,
		&rec.Thumbnails, &status, &failedStage, &errorKind, &errorMessage,
		&documentPath, &started, &finished,
	); err != nil {
		return Record{}, fmt.Errorf("scan run: %w", err)
	}
	rec.Duration = duration.Float64
	rec.Status = Status(status)
	rec.FailedStage = failedStage.String
	rec.ErrorKind = errorKind.String
	rec.ErrorMessage = errorMessage.String
	rec.DocumentPath = documentPath.String
	rec.StartedAt = parseTime(started)
	rec.FinishedAt = parseTime(finished)
	return rec, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}
