package panel

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

const (
	minChartHeight = 400
	rowHeight      = 28
)

// Bar is one bar of the Top-N chart.
type Bar struct {
	Disease string `json:"disease"`
	Value   int64  `json:"value"`
	Text    string `json:"text"`
}

// ChartsPanel carries the data for the bar chart and the heatmap. Bars are
// in display order, smallest first; heatmap rows follow the ranking.
type ChartsPanel struct {
	Metric        dataset.Column          `json:"metric"`
	MetricLabel   string                  `json:"metric_label"`
	BarTitle      string                  `json:"bar_title"`
	Bars          []Bar                   `json:"bars"`
	BarScale      string                  `json:"bar_scale"`
	HeatmapTitle  string                  `json:"heatmap_title"`
	Heatmap       analysis.NormalizedView `json:"heatmap"`
	HeatmapScheme string                  `json:"heatmap_scheme"`
	Height        int                     `json:"height"`
}

// Charts builds the chart panel for st.
func Charts(ds *dataset.Dataset, st selection.State) ChartsPanel {
	return chartsOf(analysis.Filter(ds, st.Criteria()), st)
}

func chartsOf(view []dataset.Record, st selection.State) ChartsPanel {
	top := analysis.Rank(view, st.Metric, st.TopN, st.Descending)
	asc := analysis.Rank(top, st.Metric, len(top), false)
	return ChartsPanel{
		Metric:      st.Metric,
		MetricLabel: st.MetricLabel,
		BarTitle:    fmt.Sprintf("%s 기준 상병 Top %d", st.MetricLabel, st.TopN),
		Bars: lo.Map(asc, func(r dataset.Record, _ int) Bar {
			v := st.Metric.Value(r)
			return Bar{Disease: r.Disease, Value: v, Text: Count(v)}
		}),
		BarScale:      st.Theme.BarScale(),
		HeatmapTitle:  fmt.Sprintf("Top %d 상병의 다중 지표 히트맵 (정규화 값)", st.TopN),
		Heatmap:       analysis.Normalize(top, dataset.HeatmapColumns),
		HeatmapScheme: st.Theme.HeatmapScheme(),
		Height:        max(minChartHeight, rowHeight*len(top)),
	}
}
