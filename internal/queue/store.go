package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"clipforge/internal/config"
)

// Store manages the job ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the ledger database under the log
// directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path reports the database file backing the ledger.
func (s *Store) Path() string { return s.path }

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

const jobColumns = `id, project_id, source_path, resolution, codec, status,
	error_message, output_path, subtitle_path, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (Job, error) {
	var job Job
	var status, createdRaw, updatedRaw string
	err := row.Scan(&job.ID, &job.ProjectID, &job.SourcePath, &job.Resolution,
		&job.Codec, &status, &job.ErrorMessage, &job.OutputPath,
		&job.SubtitlePath, &createdRaw, &updatedRaw)
	if err != nil {
		return Job{}, err
	}
	job.Status = Status(status)
	if created, parseErr := parseTimeString(createdRaw); parseErr == nil {
		job.CreatedAt = created
	}
	if updated, parseErr := parseTimeString(updatedRaw); parseErr == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

// NewJob inserts a pending job and returns it with its assigned id.
func (s *Store) NewJob(ctx context.Context, projectID, sourcePath, resolution, codec string) (Job, error) {
	ctx = ensureContext(ctx)
	var id int64
	err := retryOnBusy(ctx, func() error {
		result, execErr := s.db.ExecContext(ctx,
			`INSERT INTO jobs (project_id, source_path, resolution, codec, status)
			 VALUES (?, ?, ?, ?, ?)`,
			projectID, sourcePath, resolution, codec, string(StatusPending))
		if execErr != nil {
			return execErr
		}
		id, execErr = result.LastInsertId()
		return execErr
	})
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}
	return s.GetByID(ctx, id)
}

// SetStatus advances a job to a new lifecycle state.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status) error {
	if _, ok := statusSet[status]; !ok {
		return fmt.Errorf("unknown status %q", status)
	}
	err := s.execWithRetry(ctx,
		"UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(status), id)
	if err != nil {
		return fmt.Errorf("update job %d status: %w", id, err)
	}
	return nil
}

// MarkCompleted records the artifact paths and moves the job to completed.
func (s *Store) MarkCompleted(ctx context.Context, id int64, outputPath, subtitlePath string) error {
	err := s.execWithRetry(ctx,
		`UPDATE jobs SET status = ?, output_path = ?, subtitle_path = ?,
		 error_message = '', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(StatusCompleted), outputPath, subtitlePath, id)
	if err != nil {
		return fmt.Errorf("complete job %d: %w", id, err)
	}
	return nil
}

// MarkFailed records the failure message and moves the job to failed.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	err := s.execWithRetry(ctx,
		`UPDATE jobs SET status = ?, error_message = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(StatusFailed), message, id)
	if err != nil {
		return fmt.Errorf("fail job %d: %w", id, err)
	}
	return nil
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id int64) (Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, fmt.Errorf("job %d not found", id)
	}
	if err != nil {
		return Job{}, fmt.Errorf("fetch job %d: %w", id, err)
	}
	return job, nil
}

// List returns jobs newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]Job, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + jobColumns + " FROM jobs"
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan job: %w", scanErr)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

// Clear removes terminal jobs from the ledger, returning the count removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		result, execErr := s.db.ExecContext(ctx,
			"DELETE FROM jobs WHERE status IN (?, ?)",
			string(StatusCompleted), string(StatusFailed))
		if execErr != nil {
			return execErr
		}
		affected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return affected, nil
}

// Health verifies the ledger is reachable and counts rows per status.
func (s *Store) Health(ctx context.Context) (map[Status]int, error) {
	ctx = ensureContext(ctx)
	if err := s.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(1) FROM jobs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
