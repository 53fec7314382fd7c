package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gofrs/flock"
)

// FileQueue stores jobs as lines in a text file. Exclusive access is an
// advisory lock on a sibling ".lock" file, taken without blocking and retried
// within the configured budget.
type FileQueue struct {
	path     string
	lockPath string
	retry    Retry
}

// NewFileQueue returns a queue backed by the text file at path. The file is
// created on first append.
func NewFileQueue(path string, retry Retry) *FileQueue {
	return &FileQueue{
		path:     path,
		lockPath: path + ".lock",
		retry:    retry.normalized(),
	}
}

// Enqueue appends one line for job.
func (q *FileQueue) Enqueue(ctx context.Context, job Job) error {
	line := EncodeLine(job) + lineEnding
	return q.withExclusive(ensureContext(ctx), func() error {
		file, err := os.OpenFile(q.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open queue file: %w", err)
		}
		if _, err := file.WriteString(line); err != nil {
			_ = file.Close()
			return fmt.Errorf("append queue line: %w", err)
		}
		return file.Close()
	})
}

// DrainDistinct reads the whole file and truncates it before releasing the lock.
func (q *FileQueue) DrainDistinct(ctx context.Context) ([]Job, error) {
	var content string
	err := q.withExclusive(ensureContext(ctx), func() error {
		file, err := os.OpenFile(q.path, os.O_RDWR, 0)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("open queue file: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("read queue file: %w", err)
		}
		if err := file.Truncate(0); err != nil {
			return fmt.Errorf("truncate queue file: %w", err)
		}
		content = string(data)
		return file.Close()
	})
	if err != nil {
		return nil, err
	}
	return Distinct(DecodeLines(content)), nil
}

// Pending reads the queue without clearing it.
func (q *FileQueue) Pending(ctx context.Context) ([]Job, error) {
	var content string
	err := q.withExclusive(ensureContext(ctx), func() error {
		data, err := os.ReadFile(q.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("read queue file: %w", err)
		}
		content = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return DecodeLines(content), nil
}

// Close is a no-op; the file queue holds no handles between operations.
func (q *FileQueue) Close() error {
	return nil
}

func (q *FileQueue) withExclusive(ctx context.Context, fn func() error) error {
	lock := flock.New(q.lockPath)
	for attempt := 0; attempt < q.retry.Attempts; attempt++ {
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("lock queue file: %w", err)
		}
		if locked {
			defer func() { _ = lock.Unlock() }()
			return fn()
		}
		if attempt == q.retry.Attempts-1 {
			break
		}
		if err := sleepContext(ctx, q.retry.Delay); err != nil {
			return err
		}
	}
	return ErrContention
}
