// Package export writes the filtered view to downloadable files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/utils"
)

// Exporter defines a file format for the filtered view.
type Exporter interface {
	Format() string
	Extension() string
	ContentType() string
	Export(w io.Writer, records []dataset.Record, enc dataset.Encoding) error
}

// ErrUnknownFormat indicates no exporter is registered under a name.
var ErrUnknownFormat = errors.New("unknown export format")

var registry = map[string]Exporter{}

// Register adds an exporter implementation to the registry.
func Register(e Exporter) {
	registry[e.Format()] = e
}

// ByFormat looks up an exporter by name, case-insensitively.
func ByFormat(name string) (Exporter, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return e, nil
}

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FileName is the suggested download name for a year's filtered view.
func FileName(year int, e Exporter) string {
	return fmt.Sprintf("감염병_진료통계_%d_filtered.%s", year, e.Extension())
}

// Bytes renders records into memory.
func Bytes(e Exporter, records []dataset.Record, enc dataset.Encoding) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(&buf, records, enc); err != nil {
		return nil, fmt.Errorf("export %s: %w", e.Format(), err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders records and atomically replaces path.
func WriteFile(path string, e Exporter, records []dataset.Record, enc dataset.Encoding) error {
	b, err := Bytes(e, records, enc)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

func init() {
	Register(csvExporter{})
	Register(xlsxExporter{})
	Register(parquetExporter{})
}
