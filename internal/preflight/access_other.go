//go:build !unix

package preflight

import (
	"os"
	"path/filepath"
)

// checkAccess creates and removes a scratch file where access(2) is unavailable.
func checkAccess(path string) error {
	scratch, err := os.CreateTemp(path, ".nfcrename-access-*")
	if err != nil {
		return err
	}
	name := scratch.Name()
	_ = scratch.Close()
	return os.Remove(filepath.Clean(name))
}
