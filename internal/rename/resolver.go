package rename

import (
	"errors"
	"fmt"
	"path/filepath"

	"nfcrename/internal/fileutil"
	"nfcrename/internal/textutil"
)

// ErrCollisionExhausted reports that every tried suffix was already taken.
var ErrCollisionExhausted = errors.New("no free name within collision suffix range")

// DefaultMaxAttempts bounds the suffix search when no limit is configured.
const DefaultMaxAttempts = 9999

// Resolver finds a name that does not collide with an existing entry.
type Resolver struct {
	MaxAttempts int
}

// Resolve returns desired when parent/desired is free. Otherwise it returns
// the first free "desired (n)" for directories or "stem (n)ext" for files,
// probing n from 1 up to MaxAttempts.
func (r Resolver) Resolve(parent, desired string, isDir bool) (string, error) {
	if !fileutil.Occupied(filepath.Join(parent, desired)) {
		return desired, nil
	}

	limit := r.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}

	stem, ext := desired, ""
	if !isDir {
		stem, ext = textutil.SplitExt(desired)
	}
	for n := 1; n <= limit; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !fileutil.Occupied(filepath.Join(parent, candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s after %d attempts", ErrCollisionExhausted, desired, parent, limit)
}
