// Package chart renders report aggregates as PNG bar and line charts.
package chart

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when a series has too few points to draw.
// Callers skip the chart and keep going; an empty result is not a failure.
var ErrNoData = errors.New("chart: not enough data points")

const (
	defaultWidth  = 1024
	defaultHeight = 512
)

// WriteBar renders a bar chart of labels/values to path.
func WriteBar(path, title string, labels []string, values []float64) error {
	if len(labels) == 0 || len(labels) != len(values) {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(labels))
	for i, label := range labels {
		bars = append(bars, chart.Value{Label: label, Value: values[i]})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    defaultWidth,
		Height:   defaultHeight,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		// Explicit range: go-chart cannot derive one from a single bar or
		// from bars of equal height.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
		},
		Bars: bars,
	}

	return renderToFile(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

// WriteMonthlyLine renders a time-series line chart. Months are "2006-01"
// strings, ascending; at least two points are required to draw a line.
func WriteMonthlyLine(path, title string, months []string, values []float64) error {
	if len(months) < 2 || len(months) != len(values) {
		return ErrNoData
	}

	xs := make([]time.Time, 0, len(months))
	for _, m := range months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return fmt.Errorf("chart: bad month %q: %w", m, err)
		}
		xs = append(xs, t)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: values,
			},
		},
	}

	return renderToFile(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func axisMax(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("chart: render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("chart: close %s: %w", path, err)
	}
	return nil
}
