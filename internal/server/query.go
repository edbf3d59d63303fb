package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// ErrBadParam marks a query parameter that is not a valid number or flag.
var ErrBadParam = errors.New("invalid query parameter")

// inputFromQuery decodes one interaction from the request query string.
func inputFromQuery(c *gin.Context) (selection.Input, error) {
	in := selection.Input{
		Theme:    c.Query("theme"),
		Search:   c.Query("q"),
		Diseases: c.QueryArray("disease"),
		Metric:   c.Query("metric"),
		Detail:   c.Query("detail"),
	}
	var err error
	if in.Year, err = intParam(c, "year"); err != nil {
		return in, err
	}
	if in.PrevYear, err = intParam(c, "prev_year"); err != nil {
		return in, err
	}
	if in.TopN, err = intParam(c, "topn"); err != nil {
		return in, err
	}
	if in.PatientMin, err = int64Param(c, "pmin"); err != nil {
		return in, err
	}
	if in.PatientMax, err = int64Param(c, "pmax"); err != nil {
		return in, err
	}
	if in.CostMin, err = int64Param(c, "cmin"); err != nil {
		return in, err
	}
	if in.CostMax, err = int64Param(c, "cmax"); err != nil {
		return in, err
	}
	switch strings.ToLower(c.Query("order")) {
	case "":
	case "desc":
		d := true
		in.Descending = &d
	case "asc":
		d := false
		in.Descending = &d
	default:
		return in, fmt.Errorf("%w: order=%q (use desc or asc)", ErrBadParam, c.Query("order"))
	}
	return in, nil
}

func intParam(c *gin.Context, name string) (*int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrBadParam, name, s)
	}
	return &v, nil
}

func int64Param(c *gin.Context, name string) (*int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(c.Query(name)), ",", "")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrBadParam, name, s)
	}
	return &v, nil
}

// stateQuery encodes st so that following a link reproduces it exactly.
func stateQuery(st selection.State) url.Values {
	v := url.Values{}
	v.Set("year", strconv.Itoa(st.Year))
	v.Set("prev_year", strconv.Itoa(st.Year))
	v.Set("theme", string(st.Theme))
	if st.Search != "" {
		v.Set("q", st.Search)
	}
	for _, d := range st.Diseases {
		v.Add("disease", d)
	}
	v.Set("metric", st.Metric.Key())
	v.Set("topn", strconv.Itoa(st.TopN))
	if st.Descending {
		v.Set("order", "desc")
	} else {
		v.Set("order", "asc")
	}
	v.Set("pmin", strconv.FormatInt(st.PatientRange.Min, 10))
	v.Set("pmax", strconv.FormatInt(st.PatientRange.Max, 10))
	v.Set("cmin", strconv.FormatInt(st.CostRange.Min, 10))
	v.Set("cmax", strconv.FormatInt(st.CostRange.Max, 10))
	if st.Detail != "" {
		v.Set("detail", st.Detail)
	}
	return v
}
