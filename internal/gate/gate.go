package gate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"nfcrename/internal/config"
	"nfcrename/internal/logging"
	"nfcrename/internal/queue"
	"nfcrename/internal/rename"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Processor handles a single drained job.
type Processor interface {
	Process(ctx context.Context, job queue.Job) (rename.Result, error)
}

// Gate runs the enqueue, elect, drain, and process cycle.
type Gate struct {
	cfg       *config.Config
	processor Processor
	logger    *slog.Logger
}

// New constructs a gate. A nil logger discards output.
func New(cfg *config.Config, processor Processor, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{
		cfg:       cfg,
		processor: processor,
		logger:    logger.With(logging.Int(logging.FieldPID, os.Getpid())),
	}
}

// Run submits the invocation's jobs and returns the process exit code.
func (g *Gate) Run(ctx context.Context, inv Invocation) int {
	return g.Submit(ctx, inv.Jobs())
}

// Submit queues jobs and, if this process wins the election, processes the
// whole queue. Per-job failures are logged and do not affect the exit code;
// only failures of the application's own storage do.
func (g *Gate) Submit(ctx context.Context, jobs []queue.Job) int {
	if err := g.cfg.EnsureDirectories(); err != nil {
		g.fatal(err)
		return ExitFailure
	}

	lock := flock.New(g.cfg.LockPath())
	leader, err := lock.TryLock()
	if err != nil {
		g.fatal(fmt.Errorf("try gate lock: %w", err))
		return ExitFailure
	}
	if leader {
		defer func() { _ = lock.Unlock() }()
	}

	q, err := queue.Open(g.cfg)
	if err != nil {
		g.fatal(fmt.Errorf("open queue: %w", err))
		return ExitFailure
	}
	defer q.Close()

	if err := g.enqueue(ctx, q, jobs); err != nil {
		return ExitFailure
	}

	if !leader {
		g.logger.Debug("follower queued jobs", logging.Int("jobs", len(jobs)))
		return ExitOK
	}

	g.coalesce(ctx)

	// Once drained, jobs exist only in this process; finish the batch even
	// if the caller is interrupted.
	batchCtx := context.WithoutCancel(ctx)
	drained, err := q.DrainDistinct(batchCtx)
	if err != nil {
		g.fatal(fmt.Errorf("drain queue: %w", err))
		return ExitFailure
	}
	g.processBatch(batchCtx, drained)
	return ExitOK
}

func (g *Gate) enqueue(ctx context.Context, q queue.Queue, jobs []queue.Job) error {
	for _, job := range jobs {
		// The queue stores UTF-8 text and NFC is undefined for other bytes.
		if !utf8.ValidString(job.Path) {
			g.logger.Warn(
				"[SKIP] path is not valid UTF-8: "+strconv.Quote(job.Path),
				logging.String(logging.FieldMode, job.Mode.Tag()),
			)
			continue
		}
		err := q.Enqueue(ctx, job)
		if err == nil {
			continue
		}
		if errors.Is(err, queue.ErrContention) {
			if g.cfg.Queue.OnContention == config.ContentionFail {
				g.logger.Error(
					fmt.Sprintf("[ERR] queue contention, job=%s path=%s", job.Mode, job.Path),
					logging.String(logging.FieldMode, job.Mode.Tag()),
					logging.String(logging.FieldPath, job.Path),
				)
				return err
			}
			g.logger.Warn(
				"[WARN] queue contention, dropped job="+job.Mode.String()+" path="+job.Path,
				logging.String(logging.FieldMode, job.Mode.Tag()),
				logging.String(logging.FieldPath, job.Path),
			)
			continue
		}
		g.fatal(fmt.Errorf("enqueue %s: %w", job, err))
		return err
	}
	return nil
}

func (g *Gate) coalesce(ctx context.Context) {
	window := g.cfg.CoalesceWindow()
	if window <= 0 {
		return
	}
	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (g *Gate) processBatch(ctx context.Context, jobs []queue.Job) {
	logger := g.logger.With(logging.String(logging.FieldBatch, uuid.NewString()))
	logger.Debug("batch drained", logging.Int("jobs", len(jobs)))

	for _, job := range jobs {
		if _, err := g.processor.Process(ctx, job); err != nil {
			logger.Error(
				fmt.Sprintf("[ERR] job=%s path=%s err=%v", job.Mode, job.Path, err),
				logging.String(logging.FieldMode, job.Mode.Tag()),
				logging.String(logging.FieldPath, job.Path),
				logging.Error(err),
			)
		}
	}
}

func (g *Gate) fatal(err error) {
	g.logger.Error("[FATAL] "+err.Error(), logging.Error(err))
}

// LeaderActive reports whether another process currently holds the gate.
// The check takes and immediately releases the lock when it is free.
func LeaderActive(cfg *config.Config) (bool, error) {
	if _, err := os.Stat(cfg.Paths.AppDir); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("check gate lock: %w", err)
	}
	if !locked {
		return true, nil
	}
	return false, lock.Unlock()
}
