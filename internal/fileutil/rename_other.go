//go:build !linux

package fileutil

func renameNoReplace(oldPath, newPath string) error {
	return renameChecked(oldPath, newPath)
}
