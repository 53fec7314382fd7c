package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Queue backends.
const (
	QueueBackendFile   = "file"
	QueueBackendSQLite = "sqlite"
	QueueBackendBolt   = "bbolt"
)

// Contention policies applied when the queue stays locked past the retry budget.
const (
	ContentionDrop = "drop"
	ContentionFail = "fail"
)

// Subtree traversal orders for recursive jobs.
const (
	TraversalPostOrder  = "post_order"
	TraversalPathLength = "path_length"
)

// Paths contains directory configuration.
type Paths struct {
	AppDir string `toml:"app_dir"`
}

// Gate contains leader election settings.
type Gate struct {
	LockName             string `toml:"lock_name"`
	CoalesceWindowMillis int    `toml:"coalesce_window_ms"`
}

// Queue contains durable job queue settings.
type Queue struct {
	Backend          string `toml:"backend"`
	AppendAttempts   int    `toml:"append_attempts"`
	RetryDelayMillis int    `toml:"retry_delay_ms"`
	OnContention     string `toml:"on_contention"`
}

// Rename contains normalization engine settings.
type Rename struct {
	Traversal            string `toml:"traversal"`
	MaxCollisionAttempts int    `toml:"max_collision_attempts"`
}

// Watch contains settings for the directory watcher.
type Watch struct {
	DebounceMillis int `toml:"debounce_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format   string `toml:"format"`
	Level    string `toml:"level"`
	FileName string `toml:"file_name"`
}

// Config encapsulates all configuration values for nfcrename.
//
// Configuration sections by subsystem:
//   - Paths: the per-user application directory
//   - Gate: lock name and coalescing window for leader election
//   - Queue: backend selection and contention handling
//   - Rename: traversal order and collision suffix budget
//   - Watch: debounce for the directory watcher
//   - Logging: log format, level, and file name
type Config struct {
	Paths   Paths   `toml:"paths"`
	Gate    Gate    `toml:"gate"`
	Queue   Queue   `toml:"queue"`
	Rename  Rename  `toml:"rename"`
	Watch   Watch   `toml:"watch"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nfcrename/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nfcrename.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the application directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.AppDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.AppDir, err)
	}
	return nil
}

// LockPath returns the gate lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.AppDir, c.Gate.LockName)
}

// QueuePath returns the queue store for the configured backend.
func (c *Config) QueuePath() string {
	switch c.Queue.Backend {
	case QueueBackendSQLite:
		return filepath.Join(c.Paths.AppDir, "queue.db")
	case QueueBackendBolt:
		return filepath.Join(c.Paths.AppDir, "queue.bolt")
	default:
		return filepath.Join(c.Paths.AppDir, "queue.txt")
	}
}

// LogPath returns the append-only log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.AppDir, c.Logging.FileName)
}

// CoalesceWindow is the pause a new leader takes before draining the queue.
func (c *Config) CoalesceWindow() time.Duration {
	return time.Duration(c.Gate.CoalesceWindowMillis) * time.Millisecond
}

// RetryDelay is the pause between attempts to get exclusive queue access.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Queue.RetryDelayMillis) * time.Millisecond
}

// WatchDebounce is the quiet period the watcher waits for before submitting.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMillis) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
