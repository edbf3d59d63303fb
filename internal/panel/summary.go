package panel

import (
	"fmt"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// Metric is one headline figure.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Raw   int64  `json:"raw"`
}

// TopRow is one line of the compact Top-N table.
type TopRow struct {
	Disease   string `json:"disease"`
	Patients  string `json:"patients"`
	TotalCost string `json:"total_cost"`
}

// SummaryPanel carries the key figures and a short ranking.
type SummaryPanel struct {
	Summary  analysis.Summary `json:"summary"`
	Metrics  []Metric         `json:"metrics"`
	TopTitle string           `json:"top_title"`
	Top      []TopRow         `json:"top"`
}

// Summary builds the summary panel for st.
func Summary(ds *dataset.Dataset, st selection.State) SummaryPanel {
	return summaryOf(analysis.Filter(ds, st.Criteria()), st)
}

func summaryOf(view []dataset.Record, st selection.State) SummaryPanel {
	s := analysis.Summarize(view)
	p := SummaryPanel{
		Summary: s,
		Metrics: []Metric{
			{Label: "총 환자수", Value: WithUnit(s.TotalPatients, "명"), Raw: s.TotalPatients},
			{Label: "총 진료비", Value: WithUnit(s.TotalCost, "원"), Raw: s.TotalCost},
			{Label: "1인당 평균 비용", Value: WithUnit(s.AvgCostPerPatient, "원"), Raw: s.AvgCostPerPatient},
		},
		TopTitle: fmt.Sprintf("%s 기준 Top %d 질환", st.MetricLabel, st.TopN),
		Top:      []TopRow{},
	}
	for _, r := range analysis.Rank(view, st.Metric, st.TopN, st.Descending) {
		p.Top = append(p.Top, TopRow{
			Disease:   r.Disease,
			Patients:  Count(r.Patients),
			TotalCost: Count(r.TotalCost),
		})
	}
	return p
}
