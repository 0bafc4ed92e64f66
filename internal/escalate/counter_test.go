package escalate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterMissingFile(t *testing.T) {
	c := NewCounter(filepath.Join(t.TempDir(), "count.txt"))
	assert.Equal(t, 0, c.Load())
}

func TestCounterRoundTrip(t *testing.T) {
	c := NewCounter(filepath.Join(t.TempDir(), "count.txt"))

	require.NoError(t, c.Store(7))
	assert.Equal(t, 7, c.Load())

	require.NoError(t, c.Store(0))
	assert.Equal(t, 0, c.Load())
}

func TestCounterCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "count.txt")
	c := NewCounter(path)

	require.NoError(t, c.Store(3))
	assert.Equal(t, 3, c.Load())
}

func TestCounterGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.txt")
	c := NewCounter(path)

	require.NoError(t, os.WriteFile(path, []byte("bananas\n"), 0o644))
	assert.Equal(t, 0, c.Load())

	require.NoError(t, os.WriteFile(path, []byte("-4\n"), 0o644))
	assert.Equal(t, 0, c.Load())
}

func TestStampMissingFile(t *testing.T) {
	s := NewStamp(filepath.Join(t.TempDir(), "cooldown.txt"))

	_, ok := s.Last()
	assert.False(t, ok)
}

func TestStampRoundTrip(t *testing.T) {
	s := NewStamp(filepath.Join(t.TempDir(), "cooldown.txt"))
	now := time.Now()

	require.NoError(t, s.Mark(now))

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, now.Unix(), last.Unix())
}

func TestStampGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cooldown.txt")
	s := NewStamp(path)

	require.NoError(t, os.WriteFile(path, []byte("not a timestamp\n"), 0o644))

	_, ok := s.Last()
	assert.False(t, ok)
}
