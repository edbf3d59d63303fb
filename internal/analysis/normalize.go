package analysis

import (
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// NormalizedRow carries the scaled values of one record, aligned with
// NormalizedView.Columns.
type NormalizedRow struct {
	Disease string    `json:"disease"`
	Values  []float64 `json:"values"`
	Raw     []int64   `json:"raw"`
}

// NormalizedView is a min-max scaled copy of a set of records.
type NormalizedView struct {
	Columns []dataset.Column `json:"columns"`
	Rows    []NormalizedRow  `json:"rows"`
}

// Normalize rescales each column independently to [0,1] over records only.
// Callers pass the displayed Top-N, so bounds are local to what is shown.
// A column whose values are all equal maps to 0 for every row.
func Normalize(records []dataset.Record, columns []dataset.Column) NormalizedView {
	nv := NormalizedView{Columns: columns, Rows: make([]NormalizedRow, len(records))}
	for i, r := range records {
		nv.Rows[i] = NormalizedRow{
			Disease: r.Disease,
			Values:  make([]float64, len(columns)),
			Raw:     make([]int64, len(columns)),
		}
	}
	if len(records) == 0 {
		return nv
	}
	for j, col := range columns {
		low, high := col.Value(records[0]), col.Value(records[0])
		for _, r := range records[1:] {
			v := col.Value(r)
			low = min(low, v)
			high = max(high, v)
		}
		for i, r := range records {
			v := col.Value(r)
			nv.Rows[i].Raw[j] = v
			if high == low {
				continue
			}
			nv.Rows[i].Values[j] = float64(v-low) / float64(high-low)
		}
	}
	return nv
}
