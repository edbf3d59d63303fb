package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func mustRead(t *testing.T) *Dataset {
	t.Helper()
	recs, err := Read(strings.NewReader(sampleCSV), UTF8)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return New(recs)
}

func TestDataset_YearsAndDiseases(t *testing.T) {
	ds := mustRead(t)
	if got := ds.Years(); !reflect.DeepEqual(got, []int{2022, 2023}) {
		t.Fatalf("Years = %v", got)
	}
	if got := ds.Diseases(2023); !reflect.DeepEqual(got, []string{"독감", "수두", "코로나19"}) {
		t.Fatalf("Diseases(2023) = %v", got)
	}
	if got := ds.Diseases(1999); len(got) != 0 {
		t.Fatalf("expected no diseases for unknown year, got %v", got)
	}
	if !ds.HasYear(2022) || ds.HasYear(2021) {
		t.Fatalf("HasYear mismatch")
	}
}

func TestDataset_Bounds(t *testing.T) {
	ds := mustRead(t)
	b, ok := ds.Bounds(2023)
	if !ok {
		t.Fatalf("expected bounds for 2023")
	}
	want := Bounds{Patients: Range{Min: 640, Max: 8100}, Cost: Range{Min: 30000000, Max: 1100000000}}
	if b != want {
		t.Fatalf("Bounds = %+v, want %+v", b, want)
	}
	if _, ok := ds.Bounds(1999); ok {
		t.Fatalf("expected no bounds for unknown year")
	}
}

func TestDataset_RecordsIsCopy(t *testing.T) {
	ds := mustRead(t)
	recs := ds.Records()
	recs[0].Patients = -1
	if ds.Records()[0].Patients == -1 {
		t.Fatalf("dataset mutated through Records()")
	}
}

func TestRange_Clamp(t *testing.T) {
	bounds := Range{Min: 10, Max: 100}
	cases := []struct {
		in, want Range
	}{
		{Range{Min: 0, Max: 1000}, Range{Min: 10, Max: 100}},
		{Range{Min: 20, Max: 30}, Range{Min: 20, Max: 30}},
		{Range{Min: 50, Max: 20}, Range{Min: 20, Max: 50}},
		{Range{Min: 500, Max: 900}, Range{Min: 500, Max: 900}},
		{Range{Min: 0, Max: 5}, Range{Min: 0, Max: 5}},
		{Range{Min: 900, Max: 500}, Range{Min: 500, Max: 900}},
		{Range{Min: 100, Max: 400}, Range{Min: 100, Max: 100}},
	}
	for _, tc := range cases {
		if got := tc.in.Clamp(bounds); got != tc.want {
			t.Fatalf("Clamp(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	// a disjoint interval must keep rejecting every in-bounds value
	r := Range{Min: 500, Max: 900}.Clamp(bounds)
	for _, v := range []int64{bounds.Min, 50, bounds.Max} {
		if r.Contains(v) {
			t.Fatalf("disjoint range %+v admits %d", r, v)
		}
	}
}

func TestParseColumn(t *testing.T) {
	for _, c := range MetricColumns {
		if got, ok := ParseColumn(c.Label()); !ok || got != c {
			t.Fatalf("label %q resolved to %v", c.Label(), got)
		}
		if got, ok := ParseColumn(strings.ToUpper(c.Key())); !ok || got != c {
			t.Fatalf("key %q resolved to %v", c.Key(), got)
		}
	}
	if _, ok := ParseColumn("사망자수"); ok {
		t.Fatalf("unknown label should not resolve")
	}
}
