package watch

import (
	"sort"
	"strings"
	"sync"
	"time"

	"nfcrename/internal/queue"
)

const defaultDebounce = 500 * time.Millisecond

// Debouncer collects jobs until no new job has arrived for the delay and
// then fires once with everything collected.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	queued map[string]queue.Mode
	onFire func(jobs []queue.Job)
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Debouncer{
		delay:  delay,
		queued: map[string]queue.Mode{},
	}
}

func (d *Debouncer) OnFire(fn func(jobs []queue.Job)) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.onFire = fn
	d.mu.Unlock()
}

// Push queues a job and restarts the quiet period. A recursive job for a
// path replaces a single-entry job for the same path.
func (d *Debouncer) Push(job queue.Job) {
	if d == nil {
		return
	}
	path := strings.TrimSpace(job.Path)
	if path == "" {
		return
	}

	d.mu.Lock()
	if existing, ok := d.queued[path]; !ok || existing != queue.ModeRecursiveDir {
		d.queued[path] = job.Mode
	}
	if d.timer != nil {
		_ = d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Stop cancels a pending fire. Queued jobs are discarded.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.timer != nil {
		_ = d.timer.Stop()
	}
	d.queued = map[string]queue.Mode{}
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	queued := d.queued
	d.queued = map[string]queue.Mode{}
	fn := d.onFire
	d.mu.Unlock()

	if fn == nil || len(queued) == 0 {
		return
	}

	paths := make([]string, 0, len(queued))
	for p := range queued {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	jobs := make([]queue.Job, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, queue.Job{Mode: queued[p], Path: p})
	}
	fn(jobs)
}
