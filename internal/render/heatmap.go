package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
)

// ErrNoData is returned for raster output of an empty chart.
var ErrNoData = errors.New("no data to draw")

const (
	heatLeft   = 170
	heatTop    = 64
	heatBottom = 16
	heatCellW  = 130
)

type heatLabel struct {
	X, Y float64
	Text string
}

type heatCell struct {
	X, Y, W, H float64
	Fill       string
	Tip        string
}

type heatData struct {
	Title         string
	Width, Height int
	Columns       []heatLabel
	Rows          []heatLabel
	Cells         []heatCell
}

var svgFuncs = template.FuncMap{
	"px": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}

var heatmapTmpl = template.Must(template.New("heatmap").Funcs(svgFuncs).Parse(tmplHeatmap))

var emptyTmpl = template.Must(template.New("empty").Parse(tmplEmpty))

const tmplHeatmap = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" font-family="sans-serif" font-size="12">
<rect width="{{.Width}}" height="{{.Height}}" fill="#ffffff"/>
<text x="16" y="22" font-size="14" font-weight="bold">{{.Title}}</text>
{{range .Columns}}<text x="{{px .X}}" y="{{px .Y}}" text-anchor="middle">{{.Text}}</text>
{{end}}{{range .Rows}}<text x="{{px .X}}" y="{{px .Y}}" text-anchor="end" dominant-baseline="middle">{{.Text}}</text>
{{end}}{{range .Cells}}<rect x="{{px .X}}" y="{{px .Y}}" width="{{px .W}}" height="{{px .H}}" fill="{{.Fill}}" stroke="#ffffff"><title>{{.Tip}}</title></rect>
{{end}}</svg>
`

const tmplEmpty = `<svg xmlns="http://www.w3.org/2000/svg" width="960" height="{{.Height}}" font-family="sans-serif" font-size="12">
<rect width="960" height="{{.Height}}" fill="#ffffff"/>
<text x="16" y="22" font-size="14" font-weight="bold">{{.Title}}</text>
<text x="480" y="{{.Middle}}" text-anchor="middle" fill="#6b7280">표시할 데이터가 없습니다</text>
</svg>
`

// Heatmap draws the normalised Top-N view: metrics on x, diseases on y in
// ranking order. Cells carry a tooltip with the scaled value.
func Heatmap(w io.Writer, p panel.ChartsPanel) error {
	nv := p.Heatmap
	if len(nv.Rows) == 0 {
		return emptySVG(w, p.HeatmapTitle, p.Height)
	}
	scale := ColorScale(p.HeatmapScheme)
	plotH := float64(p.Height - heatTop - heatBottom)
	cellH := plotH / float64(len(nv.Rows))
	d := heatData{
		Title:  p.HeatmapTitle,
		Width:  heatLeft + heatCellW*len(nv.Columns) + 16,
		Height: p.Height,
	}
	for j, col := range nv.Columns {
		d.Columns = append(d.Columns, heatLabel{
			X:    float64(heatLeft + heatCellW*j + heatCellW/2),
			Y:    heatTop - 10,
			Text: col.Label(),
		})
	}
	for i, row := range nv.Rows {
		y := float64(heatTop) + cellH*float64(i)
		d.Rows = append(d.Rows, heatLabel{X: heatLeft - 8, Y: y + cellH/2, Text: row.Disease})
		for j, v := range row.Values {
			d.Cells = append(d.Cells, heatCell{
				X:    float64(heatLeft + heatCellW*j),
				Y:    y,
				W:    heatCellW,
				H:    cellH,
				Fill: Hex(scale.At(v)),
				Tip:  fmt.Sprintf("%s · %s: %.2f", row.Disease, nv.Columns[j].Label(), v),
			})
		}
	}
	if err := heatmapTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	return nil
}

// HeatmapSVG renders p's heatmap in memory.
func HeatmapSVG(p panel.ChartsPanel) ([]byte, error) {
	var buf bytes.Buffer
	if err := Heatmap(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func emptySVG(w io.Writer, title string, height int) error {
	data := struct {
		Title          string
		Height, Middle int
	}{title, height, height / 2}
	if err := emptyTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render empty chart: %w", err)
	}
	return nil
}
