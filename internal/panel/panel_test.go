package panel

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

func testDataset() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		{Year: 2023, Disease: "독감", Patients: 5200, Claims: 7100, VisitDays: 7400, InsurerPaid: 310000000, TotalCost: 420000000},
		{Year: 2023, Disease: "코로나19", Patients: 8100, Claims: 9900, VisitDays: 12000, InsurerPaid: 900000000, TotalCost: 1100000000},
		{Year: 2023, Disease: "수두", Patients: 640, Claims: 700, VisitDays: 720, InsurerPaid: 21000000, TotalCost: 30000000},
		{Year: 2022, Disease: "독감", Patients: 4100, Claims: 5600, VisitDays: 5900, InsurerPaid: 250000000, TotalCost: 340000000},
	})
}

func state(t *testing.T, in selection.Input) selection.State {
	t.Helper()
	if in.Year == nil {
		y := 2023
		in.Year = &y
	}
	st, err := selection.Resolve(testDataset(), in, selection.Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return st
}

func TestCount(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 13300: "13,300", 1550000000: "1,550,000,000"}
	for in, want := range cases {
		if got := Count(in); got != want {
			t.Fatalf("Count(%d) = %q, want %q", in, got, want)
		}
	}
	if got := WithUnit(13300, "명"); got != "13,300 명" {
		t.Fatalf("WithUnit = %q", got)
	}
}

func TestSummary(t *testing.T) {
	p := Summary(testDataset(), state(t, selection.Input{Diseases: []string{"독감", "코로나19"}}))
	want := []string{"13,300 명", "1,520,000,000 원", "114,285 원"}
	for i, m := range p.Metrics {
		if m.Value != want[i] {
			t.Fatalf("metric %s = %q, want %q", m.Label, m.Value, want[i])
		}
	}
	if p.TopTitle != "환자수 기준 Top 10 질환" {
		t.Fatalf("TopTitle = %q", p.TopTitle)
	}
	wantTop := []TopRow{
		{Disease: "코로나19", Patients: "8,100", TotalCost: "1,100,000,000"},
		{Disease: "독감", Patients: "5,200", TotalCost: "420,000,000"},
	}
	if !reflect.DeepEqual(p.Top, wantTop) {
		t.Fatalf("Top = %+v", p.Top)
	}
}

func TestCharts(t *testing.T) {
	top := 5
	p := Charts(testDataset(), state(t, selection.Input{Theme: "turbo", TopN: &top}))
	var got []string
	for _, b := range p.Bars {
		got = append(got, b.Disease)
	}
	if !reflect.DeepEqual(got, []string{"수두", "독감", "코로나19"}) {
		t.Fatalf("bars must be ascending, got %v", got)
	}
	if p.Bars[2].Text != "8,100" {
		t.Fatalf("bar text = %q", p.Bars[2].Text)
	}
	if p.BarScale != "turbo" || p.HeatmapScheme != "blues" {
		t.Fatalf("scales = %s / %s", p.BarScale, p.HeatmapScheme)
	}
	if p.Height != 400 {
		t.Fatalf("Height = %d", p.Height)
	}
	if len(p.Heatmap.Rows) != 3 || p.Heatmap.Rows[0].Disease != "코로나19" {
		t.Fatalf("heatmap rows must follow the ranking: %+v", p.Heatmap.Rows)
	}
	if !reflect.DeepEqual(p.Heatmap.Columns, dataset.HeatmapColumns) {
		t.Fatalf("heatmap columns = %v", p.Heatmap.Columns)
	}
}

func TestDetail_PickAndFallback(t *testing.T) {
	p := Detail(testDataset(), state(t, selection.Input{Detail: "수두"}))
	if p.Picked != "수두" || p.Err != nil {
		t.Fatalf("picked %q err %v", p.Picked, p.Err)
	}
	if p.Lines[0].Value != "640 명" || p.Lines[4].Value != "30,000,000 원" {
		t.Fatalf("lines = %+v", p.Lines)
	}
	if p.ExportName != "감염병_진료통계_2023_filtered.csv" {
		t.Fatalf("ExportName = %q", p.ExportName)
	}
	if !reflect.DeepEqual(p.Options, []string{"독감", "코로나19", "수두"}) {
		t.Fatalf("options = %v", p.Options)
	}
	if p.Ranking[0].Rank != 1 || p.Ranking[0].Disease != "코로나19" || p.Ranking[0].Value != "8,100" {
		t.Fatalf("ranking = %+v", p.Ranking)
	}

	// 수두 is excluded by the later filter: report it and fall back.
	p = Detail(testDataset(), state(t, selection.Input{Detail: "수두", Diseases: []string{"독감"}}))
	if !errors.Is(p.Err, analysis.ErrNotFound) || !strings.Contains(p.Notice, "수두") {
		t.Fatalf("expected NotFound for 수두, got %v", p.Err)
	}
	if p.Picked != "독감" || p.Record == nil {
		t.Fatalf("expected fallback to 독감, got %q", p.Picked)
	}
}

func TestBuild_EmptyView(t *testing.T) {
	low, high := int64(100000), int64(200000)
	st := state(t, selection.Input{PatientMin: &low, PatientMax: &high})
	d := Build(testDataset(), st)
	if len(d.Errors) != 0 {
		t.Fatalf("unexpected panel errors: %v", d.Errors)
	}
	if d.Summary.Summary != (analysis.Summary{}) || len(d.Summary.Top) != 0 {
		t.Fatalf("summary = %+v", d.Summary)
	}
	if len(d.Charts.Bars) != 0 || d.Charts.Height != 400 {
		t.Fatalf("charts = %+v", d.Charts)
	}
	if d.Detail.Record != nil || !errors.Is(d.Detail.Err, analysis.ErrNotFound) {
		t.Fatalf("detail = %+v", d.Detail)
	}
}

func TestSafe_RecoversPanic(t *testing.T) {
	_, err := Safe(NameCharts, func() int { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected recovered error, got %v", err)
	}
	v, err := Safe(NameSummary, func() int { return 7 })
	if err != nil || v != 7 {
		t.Fatalf("Safe = %d, %v", v, err)
	}
}

func TestDashboardMarkdown(t *testing.T) {
	d := Build(testDataset(), state(t, selection.Input{Detail: "독감"}))
	d.Errors = map[string]string{"charts": "boom"}
	md := d.Markdown()
	for _, want := range []string{
		"Year: 2023",
		"Diseases: (all)",
		"Metric: 환자수 (desc, Top 10)",
		"- 총 환자수: 13,940 명",
		"| 코로나19 | 8,100 | 1,100,000,000 |",
		"| 코로나19 | 1.00 | 1.00 | 1.00 | 1.00 | 1.00 |",
		"1. 코로나19: 8,100",
		"Disease: 독감",
		"- 환자수: 5,200 명",
		"Export: 감염병_진료통계_2023_filtered.csv (3 rows)",
		"- charts: boom",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
