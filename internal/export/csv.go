package export

import (
	"io"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

type csvExporter struct{}

func (csvExporter) Format() string      { return "csv" }
func (csvExporter) Extension() string   { return "csv" }
func (csvExporter) ContentType() string { return "text/csv" }

// Export writes the source layout, so the file loads back unchanged.
func (csvExporter) Export(w io.Writer, records []dataset.Record, enc dataset.Encoding) error {
	return dataset.Write(w, records, enc)
}
