package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nfcrename/internal/config"
	"nfcrename/internal/gate"
	"nfcrename/internal/queue"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckGate reports whether a leader is processing a batch. Both states pass.
func CheckGate(cfg *config.Config) Result {
	const name = "Leader"

	active, err := gate.LeaderActive(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if active {
		return Result{Name: name, Passed: true, Detail: "batch in progress (" + cfg.LockPath() + ")"}
	}
	return Result{Name: name, Passed: true, Detail: "idle"}
}

// CheckQueue reports the number of pending jobs without draining them.
func CheckQueue(ctx context.Context, cfg *config.Config) Result {
	name := "Queue (" + cfg.Queue.Backend + ")"

	q, err := queue.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer q.Close()

	jobs, err := q.Pending(ctx)
	if err != nil {
		if errors.Is(err, queue.ErrContention) {
			return Result{Name: name, Passed: true, Detail: "busy"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d pending (%s)", len(jobs), cfg.QueuePath())}
}
