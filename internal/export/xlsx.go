package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// SheetName is the worksheet the xlsx export writes to.
const SheetName = "감염병_진료통계"

type xlsxExporter struct{}

func (xlsxExporter) Format() string    { return "xlsx" }
func (xlsxExporter) Extension() string { return "xlsx" }
func (xlsxExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export ignores enc; xlsx text is always UTF-8.
func (xlsxExporter) Export(w io.Writer, records []dataset.Record, _ dataset.Encoding) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(dataset.Headers))
	for i, h := range dataset.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	numStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}

	for i, r := range records {
		row := []any{r.Year, r.Disease, r.Patients, r.Claims, r.VisitDays, r.InsurerPaid, r.TotalCost}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(records) > 0 {
		last := len(records) + 1
		if err := f.SetCellStyle(SheetName, "C2", fmt.Sprintf("G%d", last), numStyle); err != nil {
			return fmt.Errorf("apply number style: %w", err)
		}
	}

	for _, cw := range []struct {
		from, to string
		width    float64
	}{{"A", "A", 10}, {"B", "B", 30}, {"C", "G", 22}} {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("set column width %s:%s: %w", cw.from, cw.to, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
