// Package panel turns the filtered view into display-ready panel payloads.
// Every panel is a pure function of the dataset and a selection snapshot.
package panel

import (
	"fmt"
	"log/slog"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// Panel names, used as keys for per-panel errors.
const (
	NameSummary = "summary"
	NameCharts  = "charts"
	NameDetail  = "detail"
)

// Dashboard holds all three panels for one selection. A nil panel failed to
// build and has an entry in Errors.
type Dashboard struct {
	State   selection.State   `json:"state"`
	Summary *SummaryPanel     `json:"summary,omitempty"`
	Charts  *ChartsPanel      `json:"charts,omitempty"`
	Detail  *DetailPanel      `json:"detail,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Build filters once and derives every panel from the shared view.
func Build(ds *dataset.Dataset, st selection.State) Dashboard {
	view := analysis.Filter(ds, st.Criteria())
	d := Dashboard{State: st}
	if p, err := Safe(NameSummary, func() SummaryPanel { return summaryOf(view, st) }); err != nil {
		d.fail(NameSummary, err)
	} else {
		d.Summary = &p
	}
	if p, err := Safe(NameCharts, func() ChartsPanel { return chartsOf(view, st) }); err != nil {
		d.fail(NameCharts, err)
	} else {
		d.Charts = &p
	}
	if p, err := Safe(NameDetail, func() DetailPanel { return detailOf(view, st) }); err != nil {
		d.fail(NameDetail, err)
	} else {
		d.Detail = &p
	}
	return d
}

func (d *Dashboard) fail(name string, err error) {
	if d.Errors == nil {
		d.Errors = map[string]string{}
	}
	d.Errors[name] = err.Error()
}

// Safe runs fn and converts a panic into an error so that one broken panel
// cannot take the others down.
func Safe[T any](name string, fn func() T) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panel failed", "panel", name, "panic", r)
			err = fmt.Errorf("%s panel: %v", name, r)
		}
	}()
	return fn(), nil
}
