package panel

import (
	"fmt"
	"sort"
	"strings"
)

// Markdown renders the dashboard as plain text for terminals and report files.
func (d Dashboard) Markdown() string {
	var b strings.Builder
	st := d.State
	b.WriteString("[DASHBOARD]\n")
	b.WriteString(fmt.Sprintf("Year: %d\n", st.Year))
	b.WriteString(fmt.Sprintf("Theme: %s\n", st.Theme))
	if len(st.Diseases) == 0 {
		b.WriteString("Diseases: (all)\n")
	} else {
		b.WriteString(fmt.Sprintf("Diseases: %s\n", strings.Join(st.Diseases, ", ")))
	}
	order := "desc"
	if !st.Descending {
		order = "asc"
	}
	b.WriteString(fmt.Sprintf("Metric: %s (%s, Top %d)\n", st.MetricLabel, order, st.TopN))
	b.WriteString(fmt.Sprintf("Patients: %s ~ %s\n", Count(st.PatientRange.Min), Count(st.PatientRange.Max)))
	b.WriteString(fmt.Sprintf("Total cost: %s ~ %s\n", Count(st.CostRange.Min), Count(st.CostRange.Max)))

	if s := d.Summary; s != nil {
		b.WriteString("\n[SUMMARY]\n")
		for _, m := range s.Metrics {
			b.WriteString(fmt.Sprintf("- %s: %s\n", m.Label, m.Value))
		}
		b.WriteString(fmt.Sprintf("\n[%s]\n", s.TopTitle))
		b.WriteString("| 상병명 | 환자수 | 총진료비 |\n|---|---:|---:|\n")
		for _, r := range s.Top {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", cell(r.Disease), r.Patients, r.TotalCost))
		}
	}

	if c := d.Charts; c != nil {
		b.WriteString(fmt.Sprintf("\n[%s]\n", c.HeatmapTitle))
		b.WriteString("| 상병명 |")
		for _, col := range c.Heatmap.Columns {
			b.WriteString(" " + col.Label() + " |")
		}
		b.WriteString("\n|---|" + strings.Repeat("---:|", len(c.Heatmap.Columns)) + "\n")
		for _, row := range c.Heatmap.Rows {
			b.WriteString("| " + cell(row.Disease) + " |")
			for _, v := range row.Values {
				b.WriteString(fmt.Sprintf(" %.2f |", v))
			}
			b.WriteString("\n")
		}
	}

	if p := d.Detail; p != nil {
		b.WriteString(fmt.Sprintf("\n[%s]\n", p.RankTitle))
		for _, r := range p.Ranking {
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", r.Rank, r.Disease, r.Value))
		}
		b.WriteString("\n[DETAIL]\n")
		if p.Notice != "" {
			b.WriteString(fmt.Sprintf("Notice: %s\n", p.Notice))
		}
		if p.Record != nil {
			b.WriteString(fmt.Sprintf("Disease: %s\n", p.Picked))
			for _, l := range p.Lines {
				b.WriteString(fmt.Sprintf("- %s: %s\n", l.Label, l.Value))
			}
		}
		b.WriteString(fmt.Sprintf("Export: %s (%d rows)\n", p.ExportName, p.Rows))
	}

	if len(d.Errors) > 0 {
		b.WriteString("\n[ERRORS]\n")
		names := make([]string, 0, len(d.Errors))
		for k := range d.Errors {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			b.WriteString(fmt.Sprintf("- %s: %s\n", k, d.Errors[k]))
		}
	}
	return b.String()
}

// cell keeps a value from breaking a markdown table row.
func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
