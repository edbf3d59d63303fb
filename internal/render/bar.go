package render

import (
	"bytes"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
)

// Format selects the output encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

const (
	chartWidth        = 960
	rotateLabelsAfter = 8
)

func provider(f Format) (chart.RendererProvider, error) {
	switch f {
	case SVG, "":
		return chart.SVG, nil
	case PNG:
		return chart.PNG, nil
	}
	return nil, fmt.Errorf("unsupported chart format %q", f)
}

// BarChart draws the Top-N bars of p. Bar colour follows the value on the
// panel's bar scale.
func BarChart(w io.Writer, p panel.ChartsPanel, f Format) error {
	rp, err := provider(f)
	if err != nil {
		return err
	}
	if len(p.Bars) == 0 {
		if f == PNG {
			return fmt.Errorf("bar chart: %w", ErrNoData)
		}
		return emptySVG(w, p.BarTitle, p.Height)
	}

	scale := ColorScale(p.BarScale)
	lo, hi := p.Bars[0].Value, p.Bars[0].Value
	for _, b := range p.Bars {
		lo, hi = min(lo, b.Value), max(hi, b.Value)
	}
	bars := make([]chart.Value, len(p.Bars))
	for i, b := range p.Bars {
		c := scale.At(position(b.Value, lo, hi))
		bars[i] = chart.Value{
			Label: b.Disease,
			Value: float64(b.Value),
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		}
	}

	// Long Top-N lists of Hangul labels overlap when drawn level.
	var xAxis chart.Style
	bottom := 16
	if len(bars) > rotateLabelsAfter {
		xAxis = chart.Style{TextRotationDegrees: 45}
		bottom = 96
	}

	graph := chart.BarChart{
		Title:      p.BarTitle,
		Width:      chartWidth,
		Height:     p.Height,
		BarWidth:   max(8, chartWidth/(2*len(bars))),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: bottom}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  p.MetricLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(hi, 1)) * 1.1},
			ValueFormatter: func(v interface{}) string {
				if fv, ok := v.(float64); ok {
					return panel.Count(int64(fv))
				}
				return ""
			},
		},
		Bars: bars,
	}
	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// BarChartSVG renders p to SVG in memory.
func BarChartSVG(p panel.ChartsPanel) ([]byte, error) {
	var buf bytes.Buffer
	if err := BarChart(&buf, p, SVG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
