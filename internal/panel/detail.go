package panel

import (
	"fmt"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/export"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// RankRow is one line of the ranking board.
type RankRow struct {
	Rank    int    `json:"rank"`
	Disease string `json:"disease"`
	Value   string `json:"value"`
}

// DetailLine is one formatted field of the picked record.
type DetailLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailPanel carries the ranking board, the picked disease and the export
// file name.
type DetailPanel struct {
	RankTitle   string          `json:"rank_title"`
	MetricLabel string          `json:"metric_label"`
	Ranking     []RankRow       `json:"ranking"`
	Options     []string        `json:"options"`
	Requested   string          `json:"requested,omitempty"`
	Picked      string          `json:"picked,omitempty"`
	Record      *dataset.Record `json:"record,omitempty"`
	Lines       []DetailLine    `json:"lines"`
	Notice      string          `json:"notice,omitempty"` // requested disease not in view
	Err         error           `json:"-"`
	ExportName  string          `json:"export_name"`
	Rows        int             `json:"rows"`
}

// Detail builds the detail panel for st.
func Detail(ds *dataset.Dataset, st selection.State) DetailPanel {
	return detailOf(analysis.Filter(ds, st.Criteria()), st)
}

func detailOf(view []dataset.Record, st selection.State) DetailPanel {
	p := DetailPanel{
		RankTitle:   fmt.Sprintf("%s 랭킹 보드 (Top %d)", st.MetricLabel, st.TopN),
		MetricLabel: st.MetricLabel,
		Ranking:     []RankRow{},
		Options:     analysis.DistinctDiseases(view),
		Requested:   st.Detail,
		Lines:       []DetailLine{},
		Rows:        len(view),
	}
	for i, r := range analysis.Rank(view, st.Metric, st.TopN, st.Descending) {
		p.Ranking = append(p.Ranking, RankRow{Rank: i + 1, Disease: r.Disease, Value: Count(st.Metric.Value(r))})
	}
	if csv, err := export.ByFormat("csv"); err == nil {
		p.ExportName = export.FileName(st.Year, csv)
	}

	rec, err := pick(view, st.Detail)
	if err != nil {
		p.Err = err
		p.Notice = err.Error()
	}
	if rec != nil {
		p.Picked = rec.Disease
		p.Record = rec
		p.Lines = DetailLines(*rec)
	}
	return p
}

// pick resolves the detail record. A requested disease missing from the view
// yields ErrNotFound together with the first remaining record, if any.
func pick(view []dataset.Record, requested string) (*dataset.Record, error) {
	if requested != "" {
		r, err := analysis.FirstMatch(view, requested)
		if err == nil {
			return &r, nil
		}
		if len(view) == 0 {
			return nil, err
		}
		first := view[0]
		return &first, err
	}
	if len(view) == 0 {
		return nil, fmt.Errorf("no diseases: %w", analysis.ErrNotFound)
	}
	first := view[0]
	return &first, nil
}

// DetailLines formats every metric of r with its unit.
func DetailLines(r dataset.Record) []DetailLine {
	return []DetailLine{
		{Label: dataset.HeaderPatients, Value: WithUnit(r.Patients, dataset.Patients.Unit())},
		{Label: dataset.HeaderClaims, Value: WithUnit(r.Claims, dataset.Claims.Unit())},
		{Label: dataset.HeaderVisitDays, Value: WithUnit(r.VisitDays, dataset.VisitDays.Unit())},
		{Label: "보험자부담금", Value: WithUnit(r.InsurerPaid, dataset.InsurerPaid.Unit())},
		{Label: "총진료비", Value: WithUnit(r.TotalCost, dataset.TotalCost.Unit())},
	}
}
