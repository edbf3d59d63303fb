package analysis

import (
	"slices"
	"sort"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// Rank sorts a copy of view by col and keeps the first topN records.
//
// Records with equal values are ordered by disease name ascending regardless
// of direction; records that still tie keep their order from view. A topN
// larger than the view returns the whole sorted view; topN <= 0 returns none.
func Rank(view []dataset.Record, col dataset.Column, topN int, descending bool) []dataset.Record {
	if topN <= 0 {
		return []dataset.Record{}
	}
	out := slices.Clone(view)
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := col.Value(out[i]), col.Value(out[j])
		if vi != vj {
			if descending {
				return vi > vj
			}
			return vi < vj
		}
		return out[i].Disease < out[j].Disease
	})
	if len(out) > topN {
		out = out[:topN]
	}
	if out == nil {
		out = []dataset.Record{}
	}
	return out
}
