package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkwatch/internal/database"
	"linkwatch/internal/models"
)

func ptr(v float64) *float64 { return &v }

func newTestGenerator(t *testing.T) (*Generator, *database.DB) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGenerator(log, db), db
}

func seedHistory(t *testing.T, db *database.DB) {
	t.Helper()
	now := time.Now()

	for i := 0; i < 6; i++ {
		rec := models.StatusRecord{
			Timestamp:         now.Add(-time.Duration(6-i) * time.Minute),
			Status:            models.StatusFullyUp,
			SuccessPercentage: 100,
			AvgLatencyMS:      ptr(20.0 + float64(i)),
			MaxLatencyMS:      ptr(40.0 + float64(i)),
			MinLatencyMS:      ptr(10.0 + float64(i)),
		}
		if i == 3 {
			rec = models.StatusRecord{
				Timestamp:         rec.Timestamp,
				Status:            models.StatusDown,
				SuccessPercentage: 0,
				PacketLoss:        100,
			}
		}
		_, err := db.Insert(context.Background(), rec)
		require.NoError(t, err)
	}
}

func TestGenerateCreatesArtifacts(t *testing.T) {
	gen, db := newTestGenerator(t)
	seedHistory(t, db)

	outDir := t.TempDir()
	reportDir, err := gen.Generate(context.Background(), outDir, 24*time.Hour)
	require.NoError(t, err)
	assert.DirExists(t, reportDir)

	for _, name := range []string{"success_rate.png", "latency.png", "packet_loss.png", "summary.txt"} {
		info, err := os.Stat(filepath.Join(reportDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	summary, err := os.ReadFile(filepath.Join(reportDir, "summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "RUN SUMMARY")
	assert.Contains(t, string(summary), "Down:           1")
	assert.Contains(t, string(summary), "WORST OUTAGE")
}

func TestGenerateEmptyHistory(t *testing.T) {
	gen, _ := newTestGenerator(t)

	reportDir, err := gen.Generate(context.Background(), t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	// Charts are skipped without data but the summary is still written
	assert.NoFileExists(t, filepath.Join(reportDir, "success_rate.png"))
	assert.FileExists(t, filepath.Join(reportDir, "summary.txt"))
}
