package gate

import (
	"path/filepath"
	"strings"

	"nfcrename/internal/queue"
)

// Invocation is one command-line request: a set of paths and whether they
// should be processed recursively.
type Invocation struct {
	Recursive bool
	Paths     []string
}

// ParseInvocation splits raw arguments into paths and the recursive marker.
// The marker ("-r" or "/r", any case) may appear anywhere and applies to
// every path. Blank arguments are ignored. Paths are made absolute against
// the current working directory because the leader that processes them may
// run elsewhere.
func ParseInvocation(args []string) Invocation {
	var inv Invocation
	for _, arg := range args {
		trimmed := strings.TrimSpace(arg)
		if trimmed == "" {
			continue
		}
		if isRecursiveMarker(trimmed) {
			inv.Recursive = true
			continue
		}
		inv.Paths = append(inv.Paths, absolute(arg))
	}
	return inv
}

// Jobs converts the invocation into queue jobs.
func (inv Invocation) Jobs() []queue.Job {
	mode := queue.ModeFileOrDir
	if inv.Recursive {
		mode = queue.ModeRecursiveDir
	}
	jobs := make([]queue.Job, 0, len(inv.Paths))
	for _, path := range inv.Paths {
		jobs = append(jobs, queue.Job{Mode: mode, Path: path})
	}
	return jobs
}

func isRecursiveMarker(arg string) bool {
	return strings.EqualFold(arg, "-r") || strings.EqualFold(arg, "/r")
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
