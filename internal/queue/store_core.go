package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a queue backed by SQLite. Each process opens its own connection;
// SQLite's file locking provides the exclusive access and busy errors are
// retried within the configured budget.
type Store struct {
	db    *sql.DB
	path  string
	retry Retry
}

const sqliteBusyCode = 5

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) retryOnBusy(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < s.retry.Attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) {
			return lastErr
		}
		if attempt == s.retry.Attempts-1 {
			break
		}
		if err := sleepContext(ctx, s.retry.Delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrContention, lastErr)
}

// OpenStore initializes or connects to the queue database at path.
func OpenStore(ctx context.Context, path string, retry Retry) (*Store, error) {
	ctx = ensureContext(ctx)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection so the pragmas below apply to every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 50",
	}
	store := &Store{db: db, path: path, retry: retry.normalized()}
	for _, pragma := range pragmas {
		if err := store.retryOnBusy(ctx, func() error {
			_, execErr := db.ExecContext(ctx, pragma)
			return execErr
		}); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if err := store.retryOnBusy(ctx, func() error { return store.migrate(ctx) }); err != nil {
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

// Enqueue inserts one job row.
func (s *Store) Enqueue(ctx context.Context, job Job) error {
	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	return s.retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO queue_jobs (mode, path, created_at) VALUES (?, ?, ?)",
			job.Mode.Tag(), job.Path, timestamp,
		)
		return err
	})
}

// DrainDistinct selects every job and deletes exactly the rows it read in a
// single immediate transaction.
func (s *Store) DrainDistinct(ctx context.Context) ([]Job, error) {
	ctx = ensureContext(ctx)
	var jobs []Job
	err := s.retryOnBusy(ctx, func() error {
		jobs = nil
		conn, err := s.db.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
			}
		}()

		maxID, read, err := scanJobs(ctx, conn)
		if err != nil {
			return err
		}
		if maxID > 0 {
			if _, err := conn.ExecContext(ctx, "DELETE FROM queue_jobs WHERE id <= ?", maxID); err != nil {
				return fmt.Errorf("delete drained jobs: %w", err)
			}
		}
		if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
			return err
		}
		committed = true
		jobs = read
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Distinct(jobs), nil
}

// Pending lists queued jobs in insertion order without removing them.
func (s *Store) Pending(ctx context.Context) ([]Job, error) {
	ctx = ensureContext(ctx)
	var jobs []Job
	err := s.retryOnBusy(ctx, func() error {
		conn, err := s.db.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()
		_, jobs, err = scanJobs(ctx, conn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func scanJobs(ctx context.Context, conn *sql.Conn) (int64, []Job, error) {
	rows, err := conn.QueryContext(ctx, "SELECT id, mode, path FROM queue_jobs ORDER BY id")
	if err != nil {
		return 0, nil, fmt.Errorf("select jobs: %w", err)
	}
	defer rows.Close()

	var (
		maxID int64
		jobs  []Job
	)
	for rows.Next() {
		var (
			id   int64
			mode string
			path string
		)
		if err := rows.Scan(&id, &mode, &path); err != nil {
			return 0, nil, fmt.Errorf("scan job: %w", err)
		}
		maxID = id
		if strings.TrimSpace(path) == "" {
			continue
		}
		jobs = append(jobs, Job{Mode: ModeFromTag(mode), Path: path})
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return maxID, jobs, nil
}
