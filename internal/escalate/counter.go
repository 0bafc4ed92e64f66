package escalate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Counter persists the consecutive-failure count as a plain integer in a
// text file, readable by anything that can cat a file.
type Counter struct {
	path string
}

// NewCounter creates a Counter backed by the given file path
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Load returns the stored count. A missing file or unparseable content
// counts as zero, so a fresh or corrupted state restarts the streak.
func (c *Counter) Load() int {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Store writes the count, creating parent directories on first use
func (c *Counter) Store(n int) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(c.path, []byte(strconv.Itoa(n)+"\n"), 0o644)
}
