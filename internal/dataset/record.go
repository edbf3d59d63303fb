package dataset

import (
	"fmt"
	"strings"
)

// Source header names. They are part of the file contract and must match the
// published dataset byte for byte after decoding.
const (
	HeaderYear        = "진료년도"
	HeaderDisease     = "상병명"
	HeaderPatients    = "환자수"
	HeaderClaims      = "명세서청구건수"
	HeaderVisitDays   = "입내원일수"
	HeaderInsurerPaid = "보험자부담금(선별포함)"
	HeaderTotalCost   = "요양급여비용총액(선별포함)"
)

// Headers lists the columns in the order they are written on export.
var Headers = []string{
	HeaderYear,
	HeaderDisease,
	HeaderPatients,
	HeaderClaims,
	HeaderVisitDays,
	HeaderInsurerPaid,
	HeaderTotalCost,
}

// Record is one disease/year row of the claims statistics.
// TotalCost >= InsurerPaid is expected but not enforced.
type Record struct {
	Year        int    `json:"year"`
	Disease     string `json:"disease"`
	Patients    int64  `json:"patients"`
	Claims      int64  `json:"claims"`
	VisitDays   int64  `json:"visit_days"`
	InsurerPaid int64  `json:"insurer_paid"`
	TotalCost   int64  `json:"total_cost"`
}

// Column identifies one of the numeric metric columns.
type Column int

const (
	Patients Column = iota
	TotalCost
	InsurerPaid
	Claims
	VisitDays
)

// MetricColumns is the order offered by the metric selector.
var MetricColumns = []Column{Patients, TotalCost, InsurerPaid, Claims, VisitDays}

// HeatmapColumns is the x-axis order of the multi-metric heatmap.
var HeatmapColumns = []Column{Patients, Claims, VisitDays, InsurerPaid, TotalCost}

type columnInfo struct {
	key   string
	label string
	unit  string
}

var columns = map[Column]columnInfo{
	Patients:    {key: "patients", label: HeaderPatients, unit: "명"},
	TotalCost:   {key: "total_cost", label: HeaderTotalCost, unit: "원"},
	InsurerPaid: {key: "insurer_paid", label: HeaderInsurerPaid, unit: "원"},
	Claims:      {key: "claims", label: HeaderClaims, unit: "건"},
	VisitDays:   {key: "visit_days", label: HeaderVisitDays, unit: "일"},
}

// Key is the ASCII identifier used in URLs, flags and JSON.
func (c Column) Key() string { return columns[c].key }

// Label is the Korean display label, identical to the source header.
func (c Column) Label() string { return columns[c].label }

// Unit is the display suffix for formatted values.
func (c Column) Unit() string { return columns[c].unit }

func (c Column) String() string { return c.Key() }

// Value extracts the column from a record.
func (c Column) Value(r Record) int64 {
	switch c {
	case Patients:
		return r.Patients
	case TotalCost:
		return r.TotalCost
	case InsurerPaid:
		return r.InsurerPaid
	case Claims:
		return r.Claims
	case VisitDays:
		return r.VisitDays
	}
	return 0
}

// ParseColumn resolves either a display label or an ASCII key.
func ParseColumn(s string) (Column, bool) {
	s = strings.TrimSpace(s)
	for _, c := range MetricColumns {
		info := columns[c]
		if s == info.label || strings.EqualFold(s, info.key) {
			return c, true
		}
	}
	return 0, false
}

// MarshalText encodes the column as its ASCII key.
func (c Column) MarshalText() ([]byte, error) { return []byte(c.Key()), nil }

// UnmarshalText accepts a key or a display label.
func (c *Column) UnmarshalText(b []byte) error {
	v, ok := ParseColumn(string(b))
	if !ok {
		return fmt.Errorf("unknown metric column %q", string(b))
	}
	*c = v
	return nil
}
