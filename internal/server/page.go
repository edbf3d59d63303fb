package server

import (
	"html/template"
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/export"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

var funcMap = template.FuncMap{
	"has":   func(list []string, s string) bool { return slices.Contains(list, s) },
	"count": panel.Count,
}

var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplPage))

type downloadLink struct {
	Format string
	URL    template.URL
}

type pageData struct {
	Title          string
	Banner         string
	State          selection.State
	Years          []int
	Themes         []selection.Theme
	Metrics        []MetricOption
	DiseaseOptions []string
	Bounds         dataset.Bounds
	Dash           panel.Dashboard
	Query          url.Values
	BarURL         template.URL
	HeatmapURL     template.URL
	Downloads      []downloadLink
}

// Page renders the full dashboard. Invalid selections show a banner and fall
// back to the defaults instead of failing the page.
// GET /
func (s *Server) Page(c *gin.Context) {
	var banner string
	in, err := inputFromQuery(c)
	var st selection.State
	if err == nil {
		st, err = selection.Resolve(s.ds, in, s.opts.Selection)
	}
	if err != nil {
		banner = err.Error()
		s.log.Warn("bad selection", "id", c.GetString(requestIDKey), "error", err)
		st, err = selection.Resolve(s.ds, selection.Input{}, s.opts.Selection)
		if err != nil {
			c.String(http.StatusServiceUnavailable, "dashboard unavailable: %v", err)
			return
		}
	}

	values := stateQuery(st)
	q := values.Encode()
	b, _ := s.ds.Bounds(st.Year)
	data := pageData{
		Title:          "감염병 진료 통계 대시보드",
		Banner:         banner,
		State:          st,
		Years:          s.ds.Years(),
		Themes:         selection.Themes,
		Metrics:        metricOptions(),
		DiseaseOptions: selection.DiseaseOptions(s.ds, st.Year, st.Search),
		Bounds:         b,
		Dash:           panel.Build(s.ds, st),
		Query:          values,
		BarURL:         template.URL("/chart/bar.svg?" + q),
		HeatmapURL:     template.URL("/chart/heatmap.svg?" + q),
	}
	for _, f := range export.Formats() {
		data.Downloads = append(data.Downloads, downloadLink{Format: f, URL: template.URL("/export?format=" + f + "&" + q)})
	}
	for name, msg := range data.Dash.Errors {
		s.log.Error("panel failed", "id", c.GetString(requestIDKey), "panel", name, "error", msg)
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(c.Writer, data); err != nil {
		s.log.Error("template error", "id", c.GetString(requestIDKey), "error", err)
	}
}

const tmplPage = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; display: flex; }
aside { width: 280px; padding: 1rem; background: #f0f2f6; min-height: 100vh; box-sizing: border-box; }
aside label { display: block; margin-top: .8rem; font-size: 13px; font-weight: 600; }
aside select, aside input[type=text], aside input[type=number] { width: 100%; box-sizing: border-box; }
main { flex: 1; display: grid; grid-template-columns: 1fr 2.2fr 1fr; gap: 2rem; padding: 1rem 2rem; }
.banner { grid-column: 1 / -1; background: #fde8e8; color: #9b1c1c; padding: .6rem 1rem; border-radius: 4px; }
.panel-error { background: #fff4e5; border: 1px solid #f0b429; padding: .6rem; }
.metric { margin-bottom: .8rem; }
.metric .label { font-size: 13px; color: #555; }
.metric .value { font-size: 24px; font-weight: 700; }
.ranktbl { border-collapse: collapse; width: 100%; table-layout: auto; }
.ranktbl th, .ranktbl td { padding: 8px 10px; border: 1px solid #ddd; font-size: 14px; }
.ranktbl th { background: #fafafa; font-weight: 700; }
.ranktbl td.num { text-align: right; white-space: nowrap; }
img.chart { width: 100%; }
</style>
</head>
<body>
<aside>
<h2>감염병 진료 통계</h2>
<p><small>데이터 출처: 건강보험심사평가원(2023)</small></p>
<form method="get" action="/">
<input type="hidden" name="prev_year" value="{{.State.Year}}">
{{if .State.Detail}}<input type="hidden" name="detail" value="{{.State.Detail}}">{{end}}
<label>연도 선택
<select name="year" onchange="this.form.submit()">
{{range .Years}}<option value="{{.}}"{{if eq . $.State.Year}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
<label>색상 테마 선택
<select name="theme">
{{range .Themes}}<option value="{{.}}"{{if eq . $.State.Theme}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
<label>질환명 검색(부분일치)
<input type="text" name="q" value="{{.State.Search}}"></label>
<label>질환(상병명) 선택
<select name="disease" multiple size="8">
{{range .DiseaseOptions}}<option value="{{.}}"{{if has $.State.Diseases .}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
<label>주요 지표 선택
<select name="metric">
{{range .Metrics}}<option value="{{.Key}}"{{if eq .Key $.State.Metric.Key}} selected{{end}}>{{.Label}}</option>
{{end}}</select></label>
<label>랭킹 표시 개수 (Top N): {{.State.TopN}}
<input type="range" name="topn" min="5" max="30" step="1" value="{{.State.TopN}}"></label>
<label>정렬 방식</label>
<input type="radio" name="order" value="desc"{{if .State.Descending}} checked{{end}}> 내림차순
<input type="radio" name="order" value="asc"{{if not .State.Descending}} checked{{end}}> 오름차순
<label>환자수 범위 필터 ({{count .Bounds.Patients.Min}} ~ {{count .Bounds.Patients.Max}})
<input type="number" name="pmin" min="{{.Bounds.Patients.Min}}" max="{{.Bounds.Patients.Max}}" step="1" value="{{.State.PatientRange.Min}}">
<input type="number" name="pmax" min="{{.Bounds.Patients.Min}}" max="{{.Bounds.Patients.Max}}" step="1" value="{{.State.PatientRange.Max}}"></label>
<label>총진료비(원) 범위 필터 ({{count .Bounds.Cost.Min}} ~ {{count .Bounds.Cost.Max}})
<input type="number" name="cmin" min="{{.Bounds.Cost.Min}}" max="{{.Bounds.Cost.Max}}" step="1000" value="{{.State.CostRange.Min}}">
<input type="number" name="cmax" min="{{.Bounds.Cost.Min}}" max="{{.Bounds.Cost.Max}}" step="1000" value="{{.State.CostRange.Max}}"></label>
<p><button type="submit">적용</button> <a href="/">초기화</a></p>
</form>
</aside>
<main>
{{if .Banner}}<div class="banner">입력값 오류로 기본 선택을 표시합니다: {{.Banner}}</div>{{end}}
<section>
<h3>📊 핵심 지표 요약</h3>
{{with .Dash.Summary}}
{{range .Metrics}}<div class="metric"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}<hr>
<p><strong>🏆 {{.TopTitle}}</strong></p>
<table class="ranktbl"><tr><th>상병명</th><th>환자수</th><th>총진료비</th></tr>
{{range .Top}}<tr><td>{{.Disease}}</td><td class="num">{{.Patients}}</td><td class="num">{{.TotalCost}}</td></tr>
{{end}}</table>
{{else}}<div class="panel-error">요약 패널 오류: {{index .Dash.Errors "summary"}}</div>{{end}}
</section>
<section>
<h3>📈 메인 시각화</h3>
{{with .Dash.Charts}}
<p><strong>📊 {{.BarTitle}}</strong></p>
<img class="chart" src="{{$.BarURL}}" alt="{{.BarTitle}}">
<hr>
<p><strong>🔥 {{.HeatmapTitle}}</strong></p>
<img class="chart" src="{{$.HeatmapURL}}" alt="{{.HeatmapTitle}}">
{{else}}<div class="panel-error">차트 패널 오류: {{index .Dash.Errors "charts"}}</div>{{end}}
</section>
<section>
<h3>🔎 상세/랭킹</h3>
{{with .Dash.Detail}}
<p><strong>🏅 {{.RankTitle}}</strong></p>
<table class="ranktbl"><tr><th>#</th><th>상병명</th><th>{{.MetricLabel}}</th></tr>
{{range .Ranking}}<tr><td>{{.Rank}}</td><td>{{.Disease}}</td><td class="num">{{.Value}}</td></tr>
{{end}}</table>
<p><strong>ℹ️ 질환 상세 보기</strong></p>
<form method="get" action="/">
{{range $k, $vs := $.Query}}{{if ne $k "detail"}}{{range $vs}}<input type="hidden" name="{{$k}}" value="{{.}}">{{end}}{{end}}{{end}}
<select name="detail" onchange="this.form.submit()">
{{range .Options}}<option value="{{.}}"{{if eq . $.Dash.Detail.Picked}} selected{{end}}>{{.}}</option>
{{end}}</select>
</form>
{{if .Notice}}<p class="panel-error">{{.Notice}}</p>{{end}}
{{if .Record}}<ul>{{range .Lines}}<li>{{.Label}}: <strong>{{.Value}}</strong></li>{{end}}</ul>{{end}}
<p><strong>⬇️ 현재 필터 데이터 다운로드</strong> ({{.Rows}}건)</p>
<p>{{range $.Downloads}}<a href="{{.URL}}">{{.Format}}</a> {{end}}</p>
<p><small>{{.ExportName}}</small></p>
{{else}}<div class="panel-error">상세 패널 오류: {{index .Dash.Errors "detail"}}</div>{{end}}
<details><summary>📄 데이터 설명 &amp; 출처</summary>
<ul>
<li>자료: <strong>건강보험심사평가원 감염병 건강보험 진료 통계(2023)</strong></li>
<li>컬럼: 진료년도, 상병명, 환자수, 명세서청구건수, 입내원일수, 보험자부담금(선별포함), 요양급여비용총액(선별포함)</li>
<li>사이드바 필터가 모든 패널에 <strong>동기 적용</strong>됩니다.</li>
</ul>
</details>
</section>
</main>
</body>
</html>
`
