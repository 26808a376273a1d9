// Package chart renders analysis views as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Size is the output image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize fits the 25 Seoul districts with readable bar labels.
var DefaultSize = Size{Width: 1400, Height: 600}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// pointStyle renders points only, without connecting lines.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Bar renders a view as a bar chart in row order. Missing values are left out.
func Bar(w io.Writer, v *analysis.View, size Size) error {
	size = size.orDefault()
	var bars []chart.Value
	maxVal := 0.0
	for _, r := range v.Rows {
		if !r.Value.Valid {
			continue
		}
		bars = append(bars, chart.Value{Label: r.District, Value: r.Value.Float})
		maxVal = math.Max(maxVal, r.Value.Float)
	}
	if len(bars) == 0 {
		return fmt.Errorf("bar %q: %w", v.Title, ErrNoData)
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	barWidth := (size.Width - 80) / (len(bars) * 2)
	if barWidth < 4 {
		barWidth = 4
	}
	bc := chart.BarChart{
		Title:      v.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  v.ValueLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// Scatter renders the correlation points with the coefficient in the title.
func Scatter(w io.Writer, c *analysis.Correlation, size Size) error {
	size = size.orDefault()
	if len(c.Points) == 0 {
		return fmt.Errorf("scatter %s/%s: %w", c.X, c.Y, ErrNoData)
	}
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	title := fmt.Sprintf("%s vs %s", c.X, c.Y)
	if c.R.Valid {
		title = fmt.Sprintf("%s (r=%.2f)", title, c.R.Float)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.X, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: c.Y, Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "districts", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorBlue)},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

// paddedRange never returns a zero-width range; go-chart rejects those.
func paddedRange(vals []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
