package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nfcrename/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("USERPROFILE", tempHome)
	t.Setenv("NFCRENAME_APP_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantAppDir := filepath.Join(tempHome, ".local", "share", "nfcrename")
	if cfg.Paths.AppDir != wantAppDir {
		t.Fatalf("unexpected app dir: got %q want %q", cfg.Paths.AppDir, wantAppDir)
	}
	if cfg.QueuePath() != filepath.Join(wantAppDir, "queue.txt") {
		t.Fatalf("unexpected queue path: %q", cfg.QueuePath())
	}
	if cfg.LogPath() != filepath.Join(wantAppDir, "log.txt") {
		t.Fatalf("unexpected log path: %q", cfg.LogPath())
	}
	if cfg.CoalesceWindow().Milliseconds() != 250 {
		t.Fatalf("unexpected coalesce window: %s", cfg.CoalesceWindow())
	}
	if cfg.Queue.AppendAttempts != 20 || cfg.RetryDelay().Milliseconds() != 10 {
		t.Fatalf("unexpected retry budget: %d x %s", cfg.Queue.AppendAttempts, cfg.RetryDelay())
	}
	if cfg.Rename.MaxCollisionAttempts != 9999 {
		t.Fatalf("unexpected collision budget: %d", cfg.Rename.MaxCollisionAttempts)
	}
	if cfg.Rename.Traversal != config.TraversalPostOrder {
		t.Fatalf("unexpected traversal: %q", cfg.Rename.Traversal)
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NFCRENAME_APP_DIR", "")

	cfgPath := filepath.Join(tempHome, "config.toml")
	content := `
[paths]
app_dir = "~/nfc"

[queue]
backend = "SQLite"
on_contention = "fail"

[rename]
traversal = "path-length"

[logging]
format = "JSON"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", cfgPath, resolved, exists)
	}
	if cfg.Paths.AppDir != filepath.Join(tempHome, "nfc") {
		t.Fatalf("unexpected app dir: %q", cfg.Paths.AppDir)
	}
	if cfg.Queue.Backend != config.QueueBackendSQLite {
		t.Fatalf("unexpected backend: %q", cfg.Queue.Backend)
	}
	if cfg.QueuePath() != filepath.Join(tempHome, "nfc", "queue.db") {
		t.Fatalf("unexpected queue path: %q", cfg.QueuePath())
	}
	if cfg.Queue.OnContention != config.ContentionFail {
		t.Fatalf("unexpected contention policy: %q", cfg.Queue.OnContention)
	}
	if cfg.Rename.Traversal != config.TraversalPathLength {
		t.Fatalf("unexpected traversal: %q", cfg.Rename.Traversal)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestAppDirEnvironmentOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NFCRENAME_APP_DIR", override)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.AppDir != override {
		t.Fatalf("expected env override %q, got %q", override, cfg.Paths.AppDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"backend", func(c *config.Config) { c.Queue.Backend = "redis" }, "queue.backend"},
		{"attempts", func(c *config.Config) { c.Queue.AppendAttempts = 0 }, "queue.append_attempts"},
		{"contention", func(c *config.Config) { c.Queue.OnContention = "block" }, "queue.on_contention"},
		{"traversal", func(c *config.Config) { c.Rename.Traversal = "bfs" }, "rename.traversal"},
		{"collisions", func(c *config.Config) { c.Rename.MaxCollisionAttempts = -1 }, "rename.max_collision_attempts"},
		{"lock name", func(c *config.Config) { c.Gate.LockName = "a/b.lock" }, "gate.lock_name"},
		{"window", func(c *config.Config) { c.Gate.CoalesceWindowMillis = -5 }, "gate.coalesce_window_ms"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, config.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSampleConfigParsesIntoDefaults(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}

	want := config.Default()
	if parsed.Gate != want.Gate || parsed.Queue != want.Queue || parsed.Rename != want.Rename {
		t.Fatalf("sample config drifted from defaults: %+v", parsed)
	}
	if parsed.Watch != want.Watch || parsed.Logging != want.Logging {
		t.Fatalf("sample config drifted from defaults: %+v", parsed)
	}
}

func TestEnsureDirectoriesCreatesAppDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.AppDir = filepath.Join(t.TempDir(), "a", "b")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.AppDir); err != nil || !info.IsDir() {
		t.Fatalf("expected app dir to exist: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories must be idempotent: %v", err)
	}
}
