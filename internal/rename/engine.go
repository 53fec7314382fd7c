package rename

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nfcrename/internal/config"
	"nfcrename/internal/fileutil"
	"nfcrename/internal/logging"
	"nfcrename/internal/queue"
	"nfcrename/internal/textutil"
)

// Status classifies what happened to one entry.
type Status int

const (
	StatusUnchanged Status = iota
	StatusRenamed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRenamed:
		return "renamed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// SkipReason explains a StatusSkipped outcome.
type SkipReason int

const (
	SkipNone SkipReason = iota
	// SkipNotFound means the entry vanished before it was processed.
	SkipNotFound
	// SkipNoParent means the entry is a root and cannot be renamed.
	SkipNoParent
)

// Outcome records the result for a single entry.
type Outcome struct {
	Path    string
	NewPath string
	IsDir   bool
	Status  Status
	Reason  SkipReason
}

// Result collects the outcomes of one job.
type Result struct {
	Job      queue.Job
	Outcomes []Outcome
}

// Renamed counts the entries that were renamed.
func (r Result) Renamed() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusRenamed {
			count++
		}
	}
	return count
}

// renameRetries bounds how often a rename is re-resolved after another
// process claimed the resolved name first.
const renameRetries = 3

// Engine renames entries to their NFC names.
type Engine struct {
	logger    *slog.Logger
	resolver  Resolver
	traversal string
}

// NewEngine builds an engine from the rename settings.
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	engine := &Engine{
		logger:    logging.NewComponentLogger(logger, "rename"),
		resolver:  Resolver{MaxAttempts: DefaultMaxAttempts},
		traversal: config.TraversalPostOrder,
	}
	if cfg != nil {
		engine.resolver.MaxAttempts = cfg.Rename.MaxCollisionAttempts
		engine.traversal = cfg.Rename.Traversal
	}
	return engine
}

// Process handles one job. Missing paths are skipped, not failed. The
// returned error is fatal for this job only.
func (e *Engine) Process(ctx context.Context, job queue.Job) (Result, error) {
	result := Result{Job: job}
	entry, ok, err := fileutil.Lookup(job.Path)
	if err != nil {
		return result, err
	}
	if !ok {
		e.logger.Info("[SKIP] not found: "+job.Path, logging.String(logging.FieldPath, job.Path))
		result.Outcomes = append(result.Outcomes, Outcome{Path: job.Path, Status: StatusSkipped, Reason: SkipNotFound})
		return result, nil
	}

	if job.Mode == queue.ModeRecursiveDir && entry.IsDir {
		children, err := subtree(ctx, job.Path, e.traversal)
		if err != nil {
			return result, err
		}
		for _, child := range children {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			outcome, err := e.normalizeSingle(child)
			if err != nil {
				return result, err
			}
			result.Outcomes = append(result.Outcomes, outcome)
		}
	}

	outcome, err := e.normalizeSingle(job.Path)
	if err != nil {
		return result, err
	}
	result.Outcomes = append(result.Outcomes, outcome)
	return result, nil
}

func (e *Engine) normalizeSingle(path string) (Outcome, error) {
	entry, ok, err := fileutil.Lookup(path)
	if err != nil {
		return Outcome{Path: path}, err
	}
	if !ok {
		e.logger.Info("[SKIP] not found: "+path, logging.String(logging.FieldPath, path))
		return Outcome{Path: path, Status: StatusSkipped, Reason: SkipNotFound}, nil
	}

	outcome := Outcome{Path: path, IsDir: entry.IsDir}
	normalized := textutil.NFC(entry.Name)
	if normalized == entry.Name {
		outcome.Status = StatusUnchanged
		return outcome, nil
	}

	parent, ok := fileutil.Parent(path)
	if !ok {
		e.logger.Info("[SKIP] no parent: "+path, logging.String(logging.FieldPath, path))
		outcome.Status = StatusSkipped
		outcome.Reason = SkipNoParent
		return outcome, nil
	}

	kind := "FILE"
	if entry.IsDir {
		kind = "DIR"
	}

	// On normalization-insensitive filesystems the NFC name already points
	// at this entry; rename it in place instead of picking a suffix. A hard
	// link under the NFC name is listed on its own and goes to the resolver.
	target := filepath.Join(parent, normalized)
	if info, err := os.Lstat(target); err == nil && os.SameFile(info, entry.Info) && !fileutil.Listed(parent, normalized) {
		if err := os.Rename(path, target); err != nil {
			return outcome, fmt.Errorf("rename %s: %w", path, err)
		}
		return e.renamed(outcome, kind, entry.Name, normalized, target), nil
	}

	for attempt := 0; attempt < renameRetries; attempt++ {
		name, err := e.resolver.Resolve(parent, normalized, entry.IsDir)
		if err != nil {
			return outcome, err
		}
		target = filepath.Join(parent, name)
		err = fileutil.RenameNoReplace(path, target)
		if errors.Is(err, fileutil.ErrTargetExists) {
			continue
		}
		if err != nil {
			return outcome, fmt.Errorf("rename %s: %w", path, err)
		}
		return e.renamed(outcome, kind, entry.Name, name, target), nil
	}
	return outcome, fmt.Errorf("rename %s: %w", path, fileutil.ErrTargetExists)
}

func (e *Engine) renamed(outcome Outcome, kind, oldName, newName, target string) Outcome {
	e.logger.Info(
		fmt.Sprintf("[OK] %s %s -> %s", kind, oldName, newName),
		logging.String(logging.FieldKind, kind),
		logging.String(logging.FieldPath, outcome.Path),
	)
	outcome.Status = StatusRenamed
	outcome.NewPath = target
	return outcome
}
