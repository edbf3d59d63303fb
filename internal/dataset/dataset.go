package dataset

import (
	"slices"
	"sort"

	"github.com/samber/lo"
)

// Range is a closed interval of counts.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v int64) bool { return v >= r.Min && v <= r.Max }

// Clamp narrows r to lie within bounds, swapping reversed endpoints first.
// An interval that does not overlap bounds is returned unchanged so that it
// still matches nothing.
func (r Range) Clamp(bounds Range) Range {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Min > bounds.Max || r.Max < bounds.Min {
		return r
	}
	r.Min = min(max(r.Min, bounds.Min), bounds.Max)
	r.Max = max(min(r.Max, bounds.Max), bounds.Min)
	return r
}

// Bounds holds the observed extremes of the range-filtered columns for a year.
type Bounds struct {
	Patients Range `json:"patients"`
	Cost     Range `json:"cost"`
}

// Dataset is the in-memory table. It is immutable after construction and safe
// for concurrent readers.
type Dataset struct {
	Path     string
	Encoding Encoding

	records []Record
}

// New builds a dataset from records, preserving their order.
func New(records []Record) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record { return slices.Clone(d.records) }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Each calls fn for every record in load order without copying the table.
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Years returns the distinct years in ascending order.
func (d *Dataset) Years() []int {
	years := lo.Uniq(lo.Map(d.records, func(r Record, _ int) int { return r.Year }))
	sort.Ints(years)
	return years
}

// HasYear reports whether any record belongs to year.
func (d *Dataset) HasYear(year int) bool {
	return lo.ContainsBy(d.records, func(r Record) bool { return r.Year == year })
}

// Diseases returns the distinct disease names of a year, sorted.
func (d *Dataset) Diseases(year int) []string {
	names := lo.Uniq(lo.FilterMap(d.records, func(r Record, _ int) (string, bool) {
		return r.Disease, r.Year == year
	}))
	sort.Strings(names)
	return names
}

// Bounds returns the observed patient and cost extremes for year. ok is false
// when the year has no records.
func (d *Dataset) Bounds(year int) (b Bounds, ok bool) {
	for _, r := range d.records {
		if r.Year != year {
			continue
		}
		if !ok {
			b = Bounds{
				Patients: Range{Min: r.Patients, Max: r.Patients},
				Cost:     Range{Min: r.TotalCost, Max: r.TotalCost},
			}
			ok = true
			continue
		}
		b.Patients.Min = min(b.Patients.Min, r.Patients)
		b.Patients.Max = max(b.Patients.Max, r.Patients)
		b.Cost.Min = min(b.Cost.Min, r.TotalCost)
		b.Cost.Max = max(b.Cost.Max, r.TotalCost)
	}
	return b, ok
}
