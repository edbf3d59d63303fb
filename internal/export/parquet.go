package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

// Row is the parquet schema. Column names are ASCII so that query engines
// don't need to quote them.
type Row struct {
	Year        int32  `parquet:"year"`
	Disease     string `parquet:"disease"`
	Patients    int64  `parquet:"patients"`
	Claims      int64  `parquet:"claims"`
	VisitDays   int64  `parquet:"visit_days"`
	InsurerPaid int64  `parquet:"insurer_paid"`
	TotalCost   int64  `parquet:"total_cost"`
}

type parquetExporter struct{}

func (parquetExporter) Format() string      { return "parquet" }
func (parquetExporter) Extension() string   { return "parquet" }
func (parquetExporter) ContentType() string { return "application/vnd.apache.parquet" }

func (parquetExporter) Export(w io.Writer, records []dataset.Record, _ dataset.Encoding) error {
	pw := parquet.NewGenericWriter[Row](w,
		parquet.Compression(&parquet.Snappy),
		parquet.CreatedBy("infectdash", "1.0", ""),
	)
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Year:        int32(r.Year),
			Disease:     r.Disease,
			Patients:    r.Patients,
			Claims:      r.Claims,
			VisitDays:   r.VisitDays,
			InsurerPaid: r.InsurerPaid,
			TotalCost:   r.TotalCost,
		}
	}
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
