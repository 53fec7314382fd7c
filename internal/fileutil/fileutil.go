package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry describes a filesystem entry as observed at processing time.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Info  os.FileInfo
}

// Lookup inspects path without following a final symlink. The boolean is
// false when nothing exists at path.
func Lookup(path string) (Entry, bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	return Entry{
		Path:  path,
		Name:  entryName(path),
		IsDir: info.IsDir(),
		Info:  info,
	}, true, nil
}

// Occupied reports whether any entry may exist at path. Errors other than
// not-exist count as occupied so callers never overwrite on uncertainty.
func Occupied(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// Listed reports whether dir holds an entry spelled exactly name. A read
// error counts as listed.
func Listed(dir, name string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return true
	}
	for _, entry := range entries {
		if entry.Name() == name {
			return true
		}
	}
	return false
}

// Parent returns the directory containing path. The boolean is false for
// root-like paths such as "/" or a volume root.
func Parent(path string) (string, bool) {
	cleaned := filepath.Clean(path)
	parent := filepath.Dir(cleaned)
	if parent == cleaned || parent == "" {
		return "", false
	}
	if vol := filepath.VolumeName(cleaned); vol != "" && cleaned == vol+string(filepath.Separator) {
		return "", false
	}
	return parent, true
}

func entryName(path string) string {
	return filepath.Base(filepath.Clean(path))
}
