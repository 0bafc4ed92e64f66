package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"linkwatch/internal/models"
)

func (g *Generator) generateSuccessChart(outputDir string, records []models.StatusRecord) error {
	timestamps := make([]time.Time, 0, len(records))
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		timestamps = append(timestamps, rec.Timestamp)
		values = append(values, float64(rec.SuccessPercentage))
	}
	if len(values) < 2 {
		return fmt.Errorf("not enough data points: %d", len(values))
	}

	graph := chart.Chart{
		Title: "Ping Success Rate",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Success (%)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Success Rate (%)",
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	return renderPNG(graph, filepath.Join(outputDir, "success_rate.png"))
}

func (g *Generator) generateLatencyChart(outputDir string, records []models.StatusRecord) error {
	var timestamps []time.Time
	var avg, max, min []float64
	for _, rec := range records {
		// Down runs carry no latency and would draw as misleading zeros
		if rec.AvgLatencyMS == nil {
			continue
		}
		timestamps = append(timestamps, rec.Timestamp)
		avg = append(avg, *rec.AvgLatencyMS)
		max = append(max, *rec.MaxLatencyMS)
		min = append(min, *rec.MinLatencyMS)
	}
	if len(timestamps) < 2 {
		return fmt.Errorf("not enough data points: %d", len(timestamps))
	}

	graph := chart.Chart{
		Title: "Latency",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Avg (ms)",
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: avg,
			},
			chart.TimeSeries{
				Name: "Max (ms)",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: timestamps,
				YValues: max,
			},
			chart.TimeSeries{
				Name: "Min (ms)",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(2),
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: timestamps,
				YValues: min,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, filepath.Join(outputDir, "latency.png"))
}

func (g *Generator) generatePacketLossChart(outputDir string, records []models.StatusRecord) error {
	timestamps := make([]time.Time, 0, len(records))
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		timestamps = append(timestamps, rec.Timestamp)
		values = append(values, float64(rec.PacketLoss))
	}
	if len(values) < 2 {
		return fmt.Errorf("not enough data points: %d", len(values))
	}

	graph := chart.Chart{
		Title: "Packet Loss",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Packet Loss (%)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Packet Loss (%)",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 255, G: 80, B: 80, A: 255},
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	return renderPNG(graph, filepath.Join(outputDir, "packet_loss.png"))
}

func renderPNG(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
