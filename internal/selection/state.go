// Package selection resolves user interaction into an immutable snapshot of
// every filter, sort and display parameter. Panels receive the snapshot by
// value; nothing in this package keeps state between interactions.
package selection

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// Top-N slider bounds.
const (
	MinTopN     = 5
	MaxTopN     = 30
	DefaultTopN = 10
)

var (
	ErrEmptyDataset  = errors.New("dataset has no records")
	ErrUnknownYear   = errors.New("unknown year")
	ErrUnknownTheme  = errors.New("unknown color theme")
	ErrUnknownMetric = errors.New("unknown metric")
)

// State is the full set of current selections.
type State struct {
	Year         int            `json:"year"`
	Theme        Theme          `json:"theme"`
	Search       string         `json:"search"`
	Diseases     []string       `json:"diseases"`
	Metric       dataset.Column `json:"metric"`
	MetricLabel  string         `json:"metric_label"`
	TopN         int            `json:"top_n"`
	Descending   bool           `json:"descending"`
	PatientRange dataset.Range  `json:"patient_range"`
	CostRange    dataset.Range  `json:"cost_range"`
	// Detail is the disease picked for the detail panel; empty picks the first.
	Detail string `json:"detail,omitempty"`
}

// Criteria converts the snapshot into filter predicates.
func (s State) Criteria() analysis.Criteria {
	return analysis.Criteria{
		Year:     s.Year,
		Diseases: s.Diseases,
		Patients: s.PatientRange,
		Cost:     s.CostRange,
	}
}

// Options carries configured defaults.
type Options struct {
	Theme Theme
	TopN  int
}

// Input is one interaction's raw parameters. Nil pointers and empty strings
// mean "not supplied".
type Input struct {
	Year       *int
	PrevYear   *int
	Theme      string
	Search     string
	Diseases   []string
	Metric     string
	TopN       *int
	Descending *bool
	PatientMin *int64
	PatientMax *int64
	CostMin    *int64
	CostMax    *int64
	Detail     string
}

// Defaults returns the state a fresh selection of year starts from: full
// ranges, no disease filter, descending by patient count.
func Defaults(ds *dataset.Dataset, year int, opt Options) (State, error) {
	b, ok := ds.Bounds(year)
	if !ok {
		return State{}, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	theme := opt.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	topN := DefaultTopN
	if opt.TopN > 0 {
		topN = clampTopN(opt.TopN)
	}
	return State{
		Year:         year,
		Theme:        theme,
		Diseases:     []string{},
		Metric:       dataset.Patients,
		MetricLabel:  dataset.Patients.Label(),
		TopN:         topN,
		Descending:   true,
		PatientRange: b.Patients,
		CostRange:    b.Cost,
	}, nil
}

// Resolve builds a complete State from in. Missing fields take their
// defaults; ranges are clamped to the year's observed bounds and reset when
// the year differs from PrevYear.
func Resolve(ds *dataset.Dataset, in Input, opt Options) (State, error) {
	years := ds.Years()
	if len(years) == 0 {
		return State{}, ErrEmptyDataset
	}
	year := years[0]
	if in.Year != nil {
		year = *in.Year
	}
	st, err := Defaults(ds, year, opt)
	if err != nil {
		return State{}, err
	}
	if in.Theme != "" {
		th, err := ParseTheme(in.Theme)
		if err != nil {
			return State{}, err
		}
		st.Theme = th
	}
	if in.Metric != "" {
		col, ok := dataset.ParseColumn(in.Metric)
		if !ok {
			return State{}, fmt.Errorf("%w: %s", ErrUnknownMetric, in.Metric)
		}
		st.Metric = col
		st.MetricLabel = col.Label()
	}
	if in.TopN != nil {
		st.TopN = clampTopN(*in.TopN)
	}
	if in.Descending != nil {
		st.Descending = *in.Descending
	}
	st.Search = in.Search
	st.Diseases = normalizeNames(in.Diseases)

	if in.PrevYear != nil && *in.PrevYear != year {
		return st, nil
	}
	b, _ := ds.Bounds(year)
	st.PatientRange = overrideRange(st.PatientRange, in.PatientMin, in.PatientMax).Clamp(b.Patients)
	st.CostRange = overrideRange(st.CostRange, in.CostMin, in.CostMax).Clamp(b.Cost)
	st.Detail = strings.TrimSpace(in.Detail)
	return st, nil
}

// DiseaseOptions lists the year's diseases whose names contain search.
func DiseaseOptions(ds *dataset.Dataset, year int, search string) []string {
	all := ds.Diseases(year)
	kw := strings.TrimSpace(search)
	if kw == "" {
		return all
	}
	return lo.Filter(all, func(name string, _ int) bool { return strings.Contains(name, kw) })
}

func clampTopN(n int) int { return min(max(n, MinTopN), MaxTopN) }

// overrideRange applies the supplied endpoints. A lone endpoint past the
// opposite default collapses the range onto itself rather than being swapped.
func overrideRange(r dataset.Range, low, high *int64) dataset.Range {
	if low != nil {
		r.Min = *low
		if high == nil && r.Min > r.Max {
			r.Max = r.Min
		}
	}
	if high != nil {
		r.Max = *high
		if low == nil && r.Max < r.Min {
			r.Min = r.Max
		}
	}
	return r
}

func normalizeNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out
}
