package analysis

import (
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// Criteria is the conjunction of predicates that defines the filtered view.
type Criteria struct {
	Year int
	// Diseases restricts the view to the named diseases. Empty means no
	// restriction, not "match nothing".
	Diseases []string
	Patients dataset.Range
	Cost     dataset.Range
}

// Filter returns the records of ds matching c, in dataset order. Every panel
// derives its data from this one function.
func Filter(ds *dataset.Dataset, c Criteria) []dataset.Record {
	var allowed map[string]struct{}
	if len(c.Diseases) > 0 {
		allowed = make(map[string]struct{}, len(c.Diseases))
		for _, d := range c.Diseases {
			allowed[d] = struct{}{}
		}
	}
	out := []dataset.Record{}
	ds.Each(func(r dataset.Record) {
		if r.Year != c.Year {
			return
		}
		if allowed != nil {
			if _, ok := allowed[r.Disease]; !ok {
				return
			}
		}
		if !c.Patients.Contains(r.Patients) || !c.Cost.Contains(r.TotalCost) {
			return
		}
		out = append(out, r)
	})
	return out
}
