package analysis

import (
	"github.com/samber/lo"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// Summary holds the headline totals of a view.
type Summary struct {
	TotalPatients     int64 `json:"total_patients"`
	TotalCost         int64 `json:"total_cost"`
	AvgCostPerPatient int64 `json:"avg_cost_per_patient"`
}

// Summarize totals patients and cost over view. The average is truncated to
// an integer and is 0 when there are no patients.
func Summarize(view []dataset.Record) Summary {
	s := Summary{
		TotalPatients: lo.SumBy(view, func(r dataset.Record) int64 { return r.Patients }),
		TotalCost:     lo.SumBy(view, func(r dataset.Record) int64 { return r.TotalCost }),
	}
	if s.TotalPatients > 0 {
		s.AvgCostPerPatient = s.TotalCost / s.TotalPatients
	}
	return s
}
