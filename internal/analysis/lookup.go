package analysis

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// ErrNotFound is returned when a disease is absent from the current view.
var ErrNotFound = errors.New("not found in current view")

// FirstMatch returns the first record of view for disease.
func FirstMatch(view []dataset.Record, disease string) (dataset.Record, error) {
	r, ok := lo.Find(view, func(r dataset.Record) bool { return r.Disease == disease })
	if !ok {
		return dataset.Record{}, fmt.Errorf("disease %q: %w", disease, ErrNotFound)
	}
	return r, nil
}

// DistinctDiseases lists disease names in order of first appearance in view.
func DistinctDiseases(view []dataset.Record) []string {
	return lo.Uniq(lo.Map(view, func(r dataset.Record, _ int) string { return r.Disease }))
}
