package cmd

import (
	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// selectionFlags binds the dashboard sidebar controls to command flags.
type selectionFlags struct {
	year        int
	theme       string
	search      string
	diseases    []string
	metric      string
	top         int
	asc         bool
	patientsMin int64
	patientsMax int64
	costMin     int64
	costMax     int64
	pick        string
}

// register adds the selection flags to c. withPick adds --pick for commands
// that render the detail panel.
func (s *selectionFlags) register(c *cobra.Command, withPick bool) {
	f := c.Flags()
	f.IntVar(&s.year, "year", 0, "year to analyze (default: earliest in the dataset)")
	f.StringVar(&s.theme, "theme", "", "color theme: blues, viridis, plasma, inferno, magma, turbo, teal, mint")
	f.StringVar(&s.search, "search", "", "keyword narrowing the disease choices")
	f.StringArrayVar(&s.diseases, "disease", nil, "disease to include (repeatable; default all)")
	f.StringVar(&s.metric, "metric", "", "ranking metric: patients, total_cost, insurer_paid, claims, visit_days")
	f.IntVar(&s.top, "top", 0, "number of ranked diseases (5-30)")
	f.BoolVar(&s.asc, "asc", false, "rank ascending instead of descending")
	f.Int64Var(&s.patientsMin, "patients-min", 0, "lower bound of the patient count range")
	f.Int64Var(&s.patientsMax, "patients-max", 0, "upper bound of the patient count range")
	f.Int64Var(&s.costMin, "cost-min", 0, "lower bound of the total cost range")
	f.Int64Var(&s.costMax, "cost-max", 0, "upper bound of the total cost range")
	if withPick {
		f.StringVar(&s.pick, "pick", "", "disease shown in the detail panel")
	}
}

// input converts the flags that were actually set into a selection input.
func (s *selectionFlags) input(c *cobra.Command) selection.Input {
	f := c.Flags()
	in := selection.Input{
		Theme:    s.theme,
		Search:   s.search,
		Diseases: s.diseases,
		Metric:   s.metric,
		Detail:   s.pick,
	}
	if f.Changed("year") {
		in.Year = &s.year
	}
	if f.Changed("top") {
		in.TopN = &s.top
	}
	if f.Changed("asc") {
		desc := !s.asc
		in.Descending = &desc
	}
	if f.Changed("patients-min") {
		in.PatientMin = &s.patientsMin
	}
	if f.Changed("patients-max") {
		in.PatientMax = &s.patientsMax
	}
	if f.Changed("cost-min") {
		in.CostMin = &s.costMin
	}
	if f.Changed("cost-max") {
		in.CostMax = &s.costMax
	}
	return in
}

// resolve loads the dataset and resolves the selection against it.
func (s *selectionFlags) resolve(c *cobra.Command) (*dataset.Dataset, selection.State, error) {
	ds, err := loadDataset()
	if err != nil {
		return nil, selection.State{}, err
	}
	st, err := selection.Resolve(ds, s.input(c), cfg.SelectionOptions())
	if err != nil {
		return nil, selection.State{}, err
	}
	return ds, st, nil
}
