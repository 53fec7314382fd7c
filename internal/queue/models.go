package queue

import "fmt"

// Mode selects how a job's path is processed.
type Mode int

const (
	// ModeFileOrDir normalizes the single entry at the path.
	ModeFileOrDir Mode = iota
	// ModeRecursiveDir normalizes a directory's whole subtree, then the directory.
	ModeRecursiveDir
)

const (
	tagFileOrDir    = "F"
	tagRecursiveDir = "R"
)

// Tag returns the single-letter queue tag for the mode.
func (m Mode) Tag() string {
	if m == ModeRecursiveDir {
		return tagRecursiveDir
	}
	return tagFileOrDir
}

func (m Mode) String() string {
	switch m {
	case ModeFileOrDir:
		return "FileOrDir"
	case ModeRecursiveDir:
		return "RecursiveDir"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromTag maps a queue tag to its mode. Anything other than "R" is a
// single-entry job.
func ModeFromTag(tag string) Mode {
	if tag == tagRecursiveDir {
		return ModeRecursiveDir
	}
	return ModeFileOrDir
}

// Job is one unit of requested work.
type Job struct {
	Mode Mode
	Path string
}

// Key identifies a job for de-duplication.
type Key struct {
	Mode Mode
	Path string
}

// Key returns the job's de-duplication identity: its mode and canonical path.
func (j Job) Key() Key {
	return Key{Mode: j.Mode, Path: CanonicalPath(j.Path)}
}

func (j Job) String() string {
	return j.Mode.Tag() + " " + j.Path
}
