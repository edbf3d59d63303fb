package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds := dataset.New([]dataset.Record{
		{Year: 2023, Disease: "독감", Patients: 5200, Claims: 7100, VisitDays: 7400, InsurerPaid: 310000000, TotalCost: 420000000},
		{Year: 2023, Disease: "코로나19", Patients: 8100, Claims: 9900, VisitDays: 12000, InsurerPaid: 900000000, TotalCost: 1100000000},
		{Year: 2023, Disease: "수두", Patients: 640, Claims: 700, VisitDays: 720, InsurerPaid: 21000000, TotalCost: 30000000},
		{Year: 2022, Disease: "독감", Patients: 4100, Claims: 5600, VisitDays: 5900, InsurerPaid: 250000000, TotalCost: 340000000},
	})
	return New(ds, Options{
		Selection: selection.Options{},
		Encoding:  dataset.CP949,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) Response {
	t.Helper()
	var resp Response
	if data != nil {
		resp.Data = data
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(t), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestGetState(t *testing.T) {
	var data StateResponse
	w := get(t, newTestServer(t), "/api/state?year=2023&q="+url.QueryEscape("코로"))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w, &data)
	if resp.Code != 0 {
		t.Fatalf("code %d", resp.Code)
	}
	if data.State.Year != 2023 || len(data.Years) != 2 || len(data.Themes) != 8 || len(data.Metrics) != 5 {
		t.Fatalf("unexpected state: %+v", data)
	}
	if len(data.DiseaseOptions) != 1 || data.DiseaseOptions[0] != "코로나19" {
		t.Fatalf("disease options = %v", data.DiseaseOptions)
	}
	if data.Bounds.Patients != (dataset.Range{Min: 640, Max: 8100}) {
		t.Fatalf("bounds = %+v", data.Bounds)
	}
}

func TestGetSummary(t *testing.T) {
	q := url.Values{"year": {"2023"}, "disease": {"독감", "코로나19"}, "topn": {"5"}, "metric": {"patients"}}
	var data struct {
		Metrics []struct{ Value string }   `json:"metrics"`
		Top     []struct{ Disease string } `json:"top"`
	}
	w := get(t, newTestServer(t), "/api/summary?"+q.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &data)
	if data.Metrics[0].Value != "13,300 명" {
		t.Fatalf("total patients = %q", data.Metrics[0].Value)
	}
	if len(data.Top) != 2 || data.Top[0].Disease != "코로나19" {
		t.Fatalf("top = %+v", data.Top)
	}
}

func TestGetSummary_RangeOutsideBounds(t *testing.T) {
	q := url.Values{"year": {"2023"}, "pmin": {"100000"}, "pmax": {"200000"}}
	var data struct {
		Metrics []struct{ Raw int64 }      `json:"metrics"`
		Top     []struct{ Disease string } `json:"top"`
	}
	w := get(t, newTestServer(t), "/api/summary?"+q.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &data)
	if data.Metrics[0].Raw != 0 || len(data.Top) != 0 {
		t.Fatalf("expected an empty view, got %+v", data)
	}
}

func TestGetDetail_NotFoundFallsBack(t *testing.T) {
	q := url.Values{"year": {"2023"}, "disease": {"독감"}, "detail": {"수두"}}
	var data struct {
		Picked string `json:"picked"`
		Notice string `json:"notice"`
	}
	w := get(t, newTestServer(t), "/api/detail?"+q.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	decode(t, w, &data)
	if data.Picked != "독감" || !strings.Contains(data.Notice, "not found") {
		t.Fatalf("detail = %+v", data)
	}
}

func TestBadSelection(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{
		"/api/summary?year=1999",
		"/api/charts?theme=rainbow",
		"/api/detail?metric=deaths",
		"/api/state?topn=ten",
		"/api/state?order=sideways",
		"/chart/bar.svg?year=abc",
		"/export?format=pdf",
	} {
		w := get(t, s, target)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", target, w.Code)
		}
		if resp := decode(t, w, nil); resp.Code != http.StatusBadRequest || resp.Message == "" {
			t.Fatalf("%s: envelope %+v", target, resp)
		}
	}
}

func TestCharts(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/chart/bar.svg?year=2023", "/chart/heatmap.svg?year=2023&theme=magma", "/chart/bar.svg?year=2023&pmin=9000&pmax=9000"} {
		w := get(t, s, target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d: %s", target, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Fatalf("%s: content type %q", target, ct)
		}
		if !strings.Contains(w.Body.String(), "<svg") {
			t.Fatalf("%s: not svg", target)
		}
	}
}

func TestExportCSV(t *testing.T) {
	q := url.Values{"year": {"2023"}, "disease": {"수두"}, "format": {"csv"}}
	w := get(t, newTestServer(t), "/export?"+q.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	_, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("content disposition: %v", err)
	}
	if params["filename"] != "감염병_진료통계_2023_filtered.csv" {
		t.Fatalf("filename = %q", params["filename"])
	}
	recs, err := dataset.Read(w.Body, dataset.CP949)
	if err != nil {
		t.Fatalf("downloaded csv does not reload: %v", err)
	}
	if len(recs) != 1 || recs[0].Disease != "수두" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestPage(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/?year=2023&theme=viridis")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"핵심 지표 요약", "13,940 명", "/chart/bar.svg?", "theme=viridis", "감염병_진료통계_2023_filtered.csv"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(body, "class=\"banner\"") {
		t.Fatalf("unexpected error banner")
	}

	w = get(t, s, "/?year=1999")
	if w.Code != http.StatusOK {
		t.Fatalf("bad selection must still render, status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "class=\"banner\"") {
		t.Fatalf("expected error banner")
	}
}
