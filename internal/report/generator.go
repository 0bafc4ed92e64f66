package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"linkwatch/internal/database"
	"linkwatch/internal/logger"
)

// Generator creates static charts and a text summary over the recorded
// history, suitable for attaching to an ISP ticket.
type Generator struct {
	log *slog.Logger
	db  *database.DB
}

// NewGenerator creates a report generator
func NewGenerator(log *slog.Logger, db *database.DB) *Generator {
	return &Generator{log: log, db: db}
}

// Generate writes a timestamped report directory under outputDir covering
// the given history window and returns its path. Individual artifacts are
// best-effort; a chart that cannot be drawn is logged and skipped.
func (g *Generator) Generate(ctx context.Context, outputDir string, window time.Duration) (string, error) {
	records, err := g.db.Recent(ctx, time.Now().Add(-window))
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("connectivity_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateSuccessChart(reportDir, records); err != nil {
		g.log.Warn("failed to generate success chart", logger.Err(err))
	}

	if err := g.generateLatencyChart(reportDir, records); err != nil {
		g.log.Warn("failed to generate latency chart", logger.Err(err))
	}

	if err := g.generatePacketLossChart(reportDir, records); err != nil {
		g.log.Warn("failed to generate packet loss chart", logger.Err(err))
	}

	if err := g.generateTextSummary(reportDir, records, window); err != nil {
		g.log.Warn("failed to generate text summary", logger.Err(err))
	}

	g.log.Info("report generated", slog.String("dir", reportDir), slog.Int("records", len(records)))
	return reportDir, nil
}
