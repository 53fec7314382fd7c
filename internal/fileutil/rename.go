package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// ErrTargetExists reports that a no-replace rename found its target occupied.
var ErrTargetExists = errors.New("rename target exists")

// RenameNoReplace moves oldPath to newPath and refuses to replace an existing
// entry at newPath. Platforms without an atomic primitive check first and
// then rename, which leaves a small window.
func RenameNoReplace(oldPath, newPath string) error {
	return renameNoReplace(oldPath, newPath)
}

func renameChecked(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: ErrTargetExists}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}
