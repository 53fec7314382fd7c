package watch

import (
	"sync"
	"testing"
	"time"

	"nfcrename/internal/queue"
)

func TestDebounceCoalesces(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	var (
		mu    sync.Mutex
		fired [][]queue.Job
	)
	d.OnFire(func(jobs []queue.Job) {
		mu.Lock()
		fired = append(fired, jobs)
		mu.Unlock()
	})

	d.Push(queue.Job{Mode: queue.ModeFileOrDir, Path: "/b"})
	d.Push(queue.Job{Mode: queue.ModeFileOrDir, Path: "/a"})
	d.Push(queue.Job{Mode: queue.ModeRecursiveDir, Path: "/a"})
	d.Push(queue.Job{Mode: queue.ModeFileOrDir, Path: "/a"})
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(fired))
	}
	jobs := fired[0]
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %#v", jobs)
	}
	if jobs[0].Path != "/a" || jobs[0].Mode != queue.ModeRecursiveDir {
		t.Fatalf("recursive job should win for /a: %#v", jobs[0])
	}
	if jobs[1].Path != "/b" || jobs[1].Mode != queue.ModeFileOrDir {
		t.Fatalf("unexpected job %#v", jobs[1])
	}
}

func TestDebounceStopDiscards(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	called := make(chan struct{}, 1)
	d.OnFire(func([]queue.Job) { called <- struct{}{} })

	d.Push(queue.Job{Path: "/x"})
	d.Stop()

	select {
	case <-called:
		t.Fatal("stopped debouncer fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebounceIgnoresBlankPaths(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	called := make(chan struct{}, 1)
	d.OnFire(func([]queue.Job) { called <- struct{}{} })
	d.Push(queue.Job{Path: "  "})

	select {
	case <-called:
		t.Fatal("blank path should not schedule a batch")
	case <-time.After(80 * time.Millisecond):
	}
}
