package testsupport

import (
	"path/filepath"
	"testing"

	"nfcrename/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp application
// directory per test. The coalescing window is shortened so leader tests do
// not sleep for the production default.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.AppDir = filepath.Join(base, "app")
	cfgVal.Gate.CoalesceWindowMillis = 10

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithBackend selects the queue backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Queue.Backend = backend
	}
}

// WithTraversal selects the recursive traversal order.
func WithTraversal(traversal string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rename.Traversal = traversal
	}
}

// WithRetry overrides the queue retry budget.
func WithRetry(attempts, delayMillis int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Queue.AppendAttempts = attempts
		b.cfg.Queue.RetryDelayMillis = delayMillis
	}
}

// WithContentionPolicy overrides queue.on_contention.
func WithContentionPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Queue.OnContention = policy
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.AppDir)
}
