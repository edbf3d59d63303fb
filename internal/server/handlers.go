package server

import (
	"bytes"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/export"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/render"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// MetricOption is one entry of the metric selector.
type MetricOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// StateResponse is the resolved selection plus everything needed to draw the
// controls.
type StateResponse struct {
	State          selection.State   `json:"state"`
	Years          []int             `json:"years"`
	Themes         []selection.Theme `json:"themes"`
	Metrics        []MetricOption    `json:"metrics"`
	DiseaseOptions []string          `json:"disease_options"`
	Bounds         dataset.Bounds    `json:"bounds"`
}

func metricOptions() []MetricOption {
	return lo.Map(dataset.MetricColumns, func(c dataset.Column, _ int) MetricOption {
		return MetricOption{Key: c.Key(), Label: c.Label()}
	})
}

// resolve decodes and validates the request's selection. On failure it has
// already written a 400 envelope.
func (s *Server) resolve(c *gin.Context) (selection.State, bool) {
	in, err := inputFromQuery(c)
	if err == nil {
		var st selection.State
		st, err = selection.Resolve(s.ds, in, s.opts.Selection)
		if err == nil {
			return st, true
		}
	}
	status := http.StatusBadRequest
	if errors.Is(err, selection.ErrEmptyDataset) {
		status = http.StatusServiceUnavailable
	}
	s.log.Warn("bad selection", "id", c.GetString(requestIDKey), "error", err)
	errorResponse(c, status, err.Error())
	return selection.State{}, false
}

// Health reports liveness.
// GET /healthz
func (s *Server) Health(c *gin.Context) {
	success(c, gin.H{"records": s.ds.Len(), "years": s.ds.Years()})
}

// GetState returns the resolved selection and the control options.
// GET /api/state
func (s *Server) GetState(c *gin.Context) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	b, _ := s.ds.Bounds(st.Year)
	success(c, StateResponse{
		State:          st,
		Years:          s.ds.Years(),
		Themes:         selection.Themes,
		Metrics:        metricOptions(),
		DiseaseOptions: selection.DiseaseOptions(s.ds, st.Year, st.Search),
		Bounds:         b,
	})
}

// GET /api/summary
func (s *Server) GetSummary(c *gin.Context) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	p, err := panel.Safe(panel.NameSummary, func() panel.SummaryPanel { return panel.Summary(s.ds, st) })
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, p)
}

// GET /api/charts
func (s *Server) GetCharts(c *gin.Context) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	p, err := panel.Safe(panel.NameCharts, func() panel.ChartsPanel { return panel.Charts(s.ds, st) })
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, p)
}

// GET /api/detail
func (s *Server) GetDetail(c *gin.Context) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	p, err := panel.Safe(panel.NameDetail, func() panel.DetailPanel { return panel.Detail(s.ds, st) })
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, p)
}

// BarChart renders the Top-N bar chart.
// GET /chart/bar.svg
func (s *Server) BarChart(c *gin.Context) {
	s.chart(c, render.BarChartSVG)
}

// Heatmap renders the normalised multi-metric heatmap.
// GET /chart/heatmap.svg
func (s *Server) Heatmap(c *gin.Context) {
	s.chart(c, render.HeatmapSVG)
}

func (s *Server) chart(c *gin.Context, draw func(panel.ChartsPanel) ([]byte, error)) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	p, err := panel.Safe(panel.NameCharts, func() panel.ChartsPanel { return panel.Charts(s.ds, st) })
	var b []byte
	if err == nil {
		b, err = draw(p)
	}
	if err != nil {
		s.log.Error("chart failed", "id", c.GetString(requestIDKey), "error", err)
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", b)
}

// Export streams the current filtered view as an attachment.
// GET /export?format=csv|xlsx|parquet
func (s *Server) Export(c *gin.Context) {
	st, ok := s.resolve(c)
	if !ok {
		return
	}
	e, err := export.ByFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	view := analysis.Filter(s.ds, st.Criteria())
	var buf bytes.Buffer
	if err := e.Export(&buf, view, s.opts.Encoding); err != nil {
		s.log.Error("export failed", "id", c.GetString(requestIDKey), "format", e.Format(), "error", err)
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	name := export.FileName(st.Year, e)
	s.log.Info("export", "id", c.GetString(requestIDKey), "format", e.Format(), "rows", len(view), "file", name)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	contentType := e.ContentType()
	if e.Format() == "csv" && s.opts.Encoding == dataset.CP949 {
		contentType += "; charset=cp949"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
