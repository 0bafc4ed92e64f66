package escalate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Stamp persists the time of the last power cycle as a unix timestamp, the
// same format the cooldown file has always used.
type Stamp struct {
	path string
}

// NewStamp creates a Stamp backed by the given file path
func NewStamp(path string) *Stamp {
	return &Stamp{path: path}
}

// Last returns the recorded power-cycle time. ok is false when no cycle has
// been recorded yet or the file is unreadable.
func (s *Stamp) Last() (time.Time, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return time.Time{}, false
	}

	unix, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// Mark records t as the last power-cycle time
func (s *Stamp) Mark(t time.Time) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, []byte(strconv.FormatInt(t.Unix(), 10)+"\n"), 0o644)
}
