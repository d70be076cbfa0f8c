package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartOptions controls RenderChart.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// DefaultChartOptions returns a 1024x512 chart titled after the model.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "SIQR outbreak",
		Width:  1024,
		Height: 512,
	}
}

// ErrEmptySeries is returned when there is no day to plot.
var ErrEmptySeries = errors.New("series has no days to plot")

// RenderChart draws the active (I+Q) series against the day index as PNG.
func RenderChart(w io.Writer, series []int, opts ChartOptions) error {
	if len(series) == 0 {
		return ErrEmptySeries
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	peak := 1.0
	lastDay := max(1.0, float64(len(series)-1))
	for d, v := range series {
		xs[d] = float64(d)
		ys[d] = float64(v)
		if ys[d] > peak {
			peak = ys[d]
		}
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "Day",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: lastDay},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Infected (I+Q)",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: peak},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Infected",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2.0,
					DotColor:    chart.ColorRed,
					DotWidth:    3.0,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
