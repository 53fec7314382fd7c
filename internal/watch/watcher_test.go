package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nfcrename/internal/queue"
)

func TestNewWatcherRejectsBadRoots(t *testing.T) {
	submit := func([]queue.Job) {}
	if _, err := NewWatcher(nil, Options{Submit: submit}); err == nil {
		t.Fatal("expected error without roots")
	}
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewWatcher([]string{file}, Options{Submit: submit}); err == nil {
		t.Fatal("expected error for a file root")
	}
	if _, err := NewWatcher([]string{t.TempDir()}, Options{}); err == nil {
		t.Fatal("expected error without submit function")
	}
}

func TestWatcherQueuesDecomposedNames(t *testing.T) {
	root := t.TempDir()
	batches := make(chan []queue.Job, 4)
	w, err := NewWatcher([]string{root}, Options{
		Debounce:  50 * time.Millisecond,
		Recursive: true,
		Submit:    func(jobs []queue.Job) { batches <- jobs },
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(root, "plain.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	decomposed := filepath.Join(root, "cafe\u0301.txt")
	if err := os.WriteFile(decomposed, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	seen := map[string]queue.Mode{}
	deadline := time.After(3 * time.Second)
	for len(seen) < 2 {
		select {
		case jobs := <-batches:
			for _, job := range jobs {
				seen[job.Path] = job.Mode
			}
		case <-deadline:
			t.Fatalf("timed out waiting for jobs, saw %#v", seen)
		}
	}

	if mode, ok := seen[decomposed]; !ok || mode != queue.ModeFileOrDir {
		t.Fatalf("decomposed file not queued as single entry: %#v", seen)
	}
	if mode, ok := seen[sub]; !ok || mode != queue.ModeRecursiveDir {
		t.Fatalf("new directory not queued recursively: %#v", seen)
	}
	if _, ok := seen[filepath.Join(root, "plain.txt")]; ok {
		t.Fatal("NFC names should not be queued")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
