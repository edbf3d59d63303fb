package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrSchema reports a header that does not match the expected columns.
	ErrSchema = errors.New("schema mismatch")
	// ErrInvalidValue reports a cell that cannot be parsed for its column.
	ErrInvalidValue = errors.New("invalid value")
)

// LoadError is returned for any failure while reading the dataset.
// Row is 1-based and counts the header as row 1; zero means not row specific.
type LoadError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the dataset file at path using enc.
func Load(path string, enc Encoding) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Read(f, enc)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	ds := New(records)
	ds.Path = path
	ds.Encoding = enc
	return ds, nil
}

// Read parses delimited records from r. The header must name exactly the
// seven source columns, in any order.
func Read(r io.Reader, enc Encoding) ([]Record, error) {
	cr := csv.NewReader(enc.reader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Row: 1, Err: fmt.Errorf("%w: empty file", ErrSchema)}
		}
		return nil, &LoadError{Row: 1, Err: fmt.Errorf("read header: %w", err)}
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, &LoadError{Row: 1, Err: err}
	}

	var out []Record
	row := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Row: row + 1, Err: err}
		}
		row++
		if len(rec) != len(Headers) {
			return nil, &LoadError{Row: row, Err: fmt.Errorf("%w: expected %d fields, got %d", ErrSchema, len(Headers), len(rec))}
		}
		parsed, lerr := parseRow(rec, idx)
		if lerr != nil {
			lerr.Row = row
			return nil, lerr
		}
		out = append(out, parsed)
	}
	return out, nil
}

func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, name)
		}
		idx[name] = i
	}
	var missing []string
	for _, h := range Headers {
		if _, ok := idx[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	if len(idx) != len(Headers) {
		var extra []string
		for _, h := range header {
			name := strings.TrimSpace(h)
			if !isKnownHeader(name) {
				extra = append(extra, name)
			}
		}
		return nil, fmt.Errorf("%w: unexpected columns %s", ErrSchema, strings.Join(extra, ", "))
	}
	return idx, nil
}

func isKnownHeader(name string) bool {
	for _, h := range Headers {
		if h == name {
			return true
		}
	}
	return false
}

func parseRow(rec []string, idx map[string]int) (Record, *LoadError) {
	var r Record
	cell := func(h string) string { return strings.TrimSpace(rec[idx[h]]) }

	r.Disease = cell(HeaderDisease)
	if r.Disease == "" {
		return r, &LoadError{Column: HeaderDisease, Err: fmt.Errorf("%w: empty disease name", ErrInvalidValue)}
	}
	year, err := parseCount(cell(HeaderYear))
	if err != nil {
		return r, &LoadError{Column: HeaderYear, Err: err}
	}
	r.Year = int(year)

	nums := []struct {
		header string
		dst    *int64
	}{
		{HeaderPatients, &r.Patients},
		{HeaderClaims, &r.Claims},
		{HeaderVisitDays, &r.VisitDays},
		{HeaderInsurerPaid, &r.InsurerPaid},
		{HeaderTotalCost, &r.TotalCost},
	}
	for _, n := range nums {
		v, err := parseCount(cell(n.header))
		if err != nil {
			return r, &LoadError{Column: n.header, Err: err}
		}
		*n.dst = v
	}
	return r, nil
}

// parseCount parses a non-negative integer cell. Thousands separators and an
// all-zero fractional part (as written by spreadsheet tools) are tolerated.
func parseCount(s string) (int64, error) {
	raw := strings.ReplaceAll(s, ",", "")
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		if strings.Trim(raw[i+1:], "0") != "" {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, s)
		}
		raw = raw[:i]
	}
	if raw == "" {
		return 0, fmt.Errorf("%w: empty cell", ErrInvalidValue)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidValue, s)
	}
	return v, nil
}

// Write serialises records with the source header in canonical column order.
func Write(w io.Writer, records []Record, enc Encoding) error {
	ew := enc.writer(w)
	cw := csv.NewWriter(ew)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			r.Disease,
			strconv.FormatInt(r.Patients, 10),
			strconv.FormatInt(r.Claims, 10),
			strconv.FormatInt(r.VisitDays, 10),
			strconv.FormatInt(r.InsurerPaid, 10),
			strconv.FormatInt(r.TotalCost, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", enc, err)
	}
	return nil
}
