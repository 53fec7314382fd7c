package testsupport

import (
	"testing"

	"nfcrename/internal/config"
	"nfcrename/internal/queue"
)

// MustOpenQueue opens the configured queue backend for tests and registers cleanup.
func MustOpenQueue(t testing.TB, cfg *config.Config) queue.Queue {
	t.Helper()

	q, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = q.Close()
	})
	return q
}
