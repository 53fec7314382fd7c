package queue

import (
	"path/filepath"
)

// CanonicalPath returns the absolute, cleaned form of p used for
// de-duplication. Symlinks in the parent directory are resolved when it
// exists; the final element is left alone so a link and its target remain
// distinct entries. Paths that cannot be made absolute are returned as-is.
func CanonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	parent, base := filepath.Split(abs)
	if base == "" {
		return abs
	}
	if resolved, err := filepath.EvalSymlinks(parent); err == nil {
		return filepath.Join(resolved, base)
	}
	return abs
}

// Distinct drops every job whose Key matches an earlier job. Order of first
// occurrence is preserved.
func Distinct(jobs []Job) []Job {
	if len(jobs) == 0 {
		return nil
	}
	seen := make(map[Key]struct{}, len(jobs))
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		key := job.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}
