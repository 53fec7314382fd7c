package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalid marks configuration values that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGate(); err != nil {
		return err
	}
	if err := c.validateQueue(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (c *Config) validateGate() error {
	if strings.ContainsAny(c.Gate.LockName, `/\`) || c.Gate.LockName != filepath.Base(c.Gate.LockName) {
		return invalid("gate.lock_name must be a bare file name, got %q", c.Gate.LockName)
	}
	if c.Gate.CoalesceWindowMillis < 0 {
		return invalid("gate.coalesce_window_ms must be zero or positive")
	}
	return nil
}

func (c *Config) validateQueue() error {
	switch c.Queue.Backend {
	case QueueBackendFile, QueueBackendSQLite, QueueBackendBolt:
	default:
		return invalid("queue.backend must be one of file, sqlite, bbolt (got %q)", c.Queue.Backend)
	}
	if c.Queue.AppendAttempts <= 0 {
		return invalid("queue.append_attempts must be positive")
	}
	if c.Queue.RetryDelayMillis <= 0 {
		return invalid("queue.retry_delay_ms must be positive")
	}
	switch c.Queue.OnContention {
	case ContentionDrop, ContentionFail:
	default:
		return invalid("queue.on_contention must be drop or fail (got %q)", c.Queue.OnContention)
	}
	return nil
}

func (c *Config) validateRename() error {
	switch c.Rename.Traversal {
	case TraversalPostOrder, TraversalPathLength:
	default:
		return invalid("rename.traversal must be post_order or path_length (got %q)", c.Rename.Traversal)
	}
	if c.Rename.MaxCollisionAttempts <= 0 {
		return invalid("rename.max_collision_attempts must be positive")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.DebounceMillis <= 0 {
		return invalid("watch.debounce_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	if c.Logging.FileName != filepath.Base(c.Logging.FileName) {
		return invalid("logging.file_name must be a bare file name, got %q", c.Logging.FileName)
	}
	return nil
}
