package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGate()
	c.normalizeQueue()
	c.normalizeRename()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(appDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.AppDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.AppDir) == "" {
		c.Paths.AppDir = defaultAppDir
	}
	var err error
	if c.Paths.AppDir, err = expandPath(c.Paths.AppDir); err != nil {
		return fmt.Errorf("paths.app_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGate() {
	c.Gate.LockName = strings.TrimSpace(c.Gate.LockName)
	if c.Gate.LockName == "" {
		c.Gate.LockName = defaultLockName
	}
}

func (c *Config) normalizeQueue() {
	c.Queue.Backend = strings.ToLower(strings.TrimSpace(c.Queue.Backend))
	if c.Queue.Backend == "" {
		c.Queue.Backend = defaultQueueBackend
	}
	c.Queue.OnContention = strings.ToLower(strings.TrimSpace(c.Queue.OnContention))
	if c.Queue.OnContention == "" {
		c.Queue.OnContention = defaultOnContention
	}
}

func (c *Config) normalizeRename() {
	traversal := strings.ToLower(strings.TrimSpace(c.Rename.Traversal))
	traversal = strings.ReplaceAll(traversal, "-", "_")
	if traversal == "" {
		traversal = defaultTraversal
	}
	c.Rename.Traversal = traversal
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.FileName = strings.TrimSpace(c.Logging.FileName)
	if c.Logging.FileName == "" {
		c.Logging.FileName = defaultLogFileName
	}
}
