package queue

import (
	"encoding/base64"
	"runtime"
	"strings"
	"unicode/utf8"
)

const fieldDelimiter = "|"

// lineEnding follows the platform newline convention.
var lineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// EncodeLine serializes a job as "<M>|<base64(utf8(path))>" without a line ending.
func EncodeLine(job Job) string {
	return job.Mode.Tag() + fieldDelimiter + base64.StdEncoding.EncodeToString([]byte(job.Path))
}

// DecodeLine parses one queue line. The boolean is false for corrupt entries:
// lines that do not split into exactly two fields, payloads that are not
// base64, decoded paths that are not valid UTF-8, and blank paths.
func DecodeLine(line string) (Job, bool) {
	line = strings.TrimRight(line, "\r")
	parts := strings.Split(line, fieldDelimiter)
	if len(parts) != 2 {
		return Job{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Job{}, false
	}
	if !utf8.Valid(raw) {
		return Job{}, false
	}
	path := string(raw)
	if strings.TrimSpace(path) == "" {
		return Job{}, false
	}
	return Job{Mode: ModeFromTag(parts[0]), Path: path}, true
}

// DecodeLines parses newline-separated queue content, skipping blank lines
// and corrupt entries.
func DecodeLines(content string) []Job {
	var jobs []Job
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if job, ok := DecodeLine(line); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}
