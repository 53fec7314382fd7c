package queue

import (
	"context"
	"fmt"
	"time"

	"nfcrename/internal/config"
)

// Queue is a durable store of pending jobs shared by every invocation in a
// user session.
type Queue interface {
	// Enqueue appends job under exclusive access. It returns ErrContention
	// when the retry budget is exhausted.
	Enqueue(ctx context.Context, job Job) error
	// DrainDistinct reads and clears the queue within one exclusive access
	// and returns the de-duplicated jobs in insertion order.
	DrainDistinct(ctx context.Context) ([]Job, error)
	// Pending returns the queued jobs without removing them.
	Pending(ctx context.Context) ([]Job, error)
	Close() error
}

// Retry bounds how often exclusive access is attempted.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

func (r Retry) normalized() Retry {
	if r.Attempts <= 0 {
		r.Attempts = 1
	}
	if r.Delay <= 0 {
		r.Delay = 10 * time.Millisecond
	}
	return r
}

// Open returns the queue backend selected by the configuration.
func Open(cfg *config.Config) (Queue, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	retry := Retry{Attempts: cfg.Queue.AppendAttempts, Delay: cfg.RetryDelay()}
	switch cfg.Queue.Backend {
	case config.QueueBackendFile, "":
		return NewFileQueue(cfg.QueuePath(), retry), nil
	case config.QueueBackendSQLite:
		return OpenStore(context.Background(), cfg.QueuePath(), retry)
	case config.QueueBackendBolt:
		return NewBoltQueue(cfg.QueuePath(), retry), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Queue.Backend)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
