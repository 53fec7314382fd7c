package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"nfcrename/internal/logging"
	"nfcrename/internal/queue"
	"nfcrename/internal/textutil"
)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Recursive watches every directory below each root and queues new
	// directories as recursive jobs.
	Recursive bool
	// Submit receives each debounced batch.
	Submit func(jobs []queue.Job)
	Logger *slog.Logger
}

// Watcher follows one or more directory trees.
type Watcher struct {
	roots     []string
	recursive bool
	debouncer *Debouncer
	logger    *slog.Logger

	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	closed    chan struct{}
}

func NewWatcher(roots []string, opts Options) (*Watcher, error) {
	if len(roots) == 0 {
		return nil, errors.New("at least one directory is required")
	}
	if opts.Submit == nil {
		return nil, errors.New("submit function is required")
	}

	abs := make([]string, 0, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(rootAbs)
		if err != nil {
			return nil, fmt.Errorf("watch root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("watch root %s is not a directory", rootAbs)
		}
		abs = append(abs, filepath.Clean(rootAbs))
	}
	if len(abs) == 0 {
		return nil, errors.New("at least one directory is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		roots:     abs,
		recursive: opts.Recursive,
		debouncer: NewDebouncer(opts.Debounce),
		logger:    logging.NewComponentLogger(opts.Logger, "watch"),
		watcher:   fsw,
		closed:    make(chan struct{}),
	}
	w.debouncer.OnFire(opts.Submit)

	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Roots returns the absolute watched roots.
func (w *Watcher) Roots() []string {
	return append([]string(nil), w.roots...)
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() { close(w.closed) })
	w.debouncer.Stop()
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.watcher == nil {
		return errors.New("watcher is not initialized")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.closed:
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	// Rename reports the old name; the new name arrives as Create.
	info, err := os.Lstat(ev.Name)
	if err != nil {
		return
	}
	path := filepath.Clean(ev.Name)

	if info.IsDir() && w.recursive {
		if err := w.addTree(path); err != nil {
			w.logger.Warn("watch new directory", logging.String(logging.FieldPath, path), logging.Error(err))
		}
		w.debouncer.Push(queue.Job{Mode: queue.ModeRecursiveDir, Path: path})
		return
	}
	if textutil.NeedsNFC(filepath.Base(path)) {
		w.debouncer.Push(queue.Job{Mode: queue.ModeFileOrDir, Path: path})
	}
}

func (w *Watcher) addTree(root string) error {
	if !w.recursive {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
}
