package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linkwatch/internal/models"
)

func (g *Generator) generateTextSummary(outputDir string, records []models.StatusRecord, window time.Duration) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Internet Connectivity Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: last %s\n\n", window)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	var fullyUp, partiallyUp, down int
	for _, rec := range records {
		switch {
		case rec.SuccessPercentage == 100:
			fullyUp++
		case rec.SuccessPercentage > 0:
			partiallyUp++
		default:
			down++
		}
	}

	fmt.Fprintf(file, "\nRUN SUMMARY\n")
	fmt.Fprintf(file, "  Total runs:     %d\n", len(records))
	fmt.Fprintf(file, "  Fully up:       %d\n", fullyUp)
	fmt.Fprintf(file, "  Partially up:   %d\n", partiallyUp)
	fmt.Fprintf(file, "  Down:           %d\n", down)

	if avg, min, max, ok := latencySpread(records); ok {
		fmt.Fprintf(file, "\nLATENCY (successful probes only)\n")
		fmt.Fprintf(file, "  Average:  %.1f ms\n", avg)
		fmt.Fprintf(file, "  Minimum:  %.1f ms\n", min)
		fmt.Fprintf(file, "  Maximum:  %.1f ms\n", max)
	}

	if streak, start, ok := longestDownStreak(records); ok {
		fmt.Fprintf(file, "\nWORST OUTAGE\n")
		fmt.Fprintf(file, "  %d consecutive down runs starting %s\n",
			streak, start.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// latencySpread averages the per-run averages and takes the extremes of the
// per-run min/max columns.
func latencySpread(records []models.StatusRecord) (avg, min, max float64, ok bool) {
	var sum float64
	var n int
	for _, rec := range records {
		if rec.AvgLatencyMS == nil {
			continue
		}
		sum += *rec.AvgLatencyMS
		if n == 0 || *rec.MinLatencyMS < min {
			min = *rec.MinLatencyMS
		}
		if n == 0 || *rec.MaxLatencyMS > max {
			max = *rec.MaxLatencyMS
		}
		n++
	}
	if n == 0 {
		return 0, 0, 0, false
	}
	return sum / float64(n), min, max, true
}

func longestDownStreak(records []models.StatusRecord) (length int, start time.Time, ok bool) {
	var current int
	var currentStart time.Time
	for _, rec := range records {
		if rec.SuccessPercentage == 0 {
			if current == 0 {
				currentStart = rec.Timestamp
			}
			current++
			if current > length {
				length = current
				start = currentStart
			}
		} else {
			current = 0
		}
	}
	return length, start, length > 0
}
