package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
)

const sampleCSV = "진료년도,상병명,환자수,명세서청구건수,입내원일수,보험자부담금(선별포함),요양급여비용총액(선별포함)\n" +
	"2023,독감,5200,7100,7400,310000000,420000000\n" +
	"2023,코로나19,8100,9900,12000,900000000,1100000000\n" +
	"2023,수두,640,700,720,21000000,30000000\n" +
	"2022,독감,4100,5600,5900,250000000,340000000\n"

func writeCP949(t *testing.T, text string) string {
	t.Helper()
	enc, err := korean.EUCKR.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	p := filepath.Join(t.TempDir(), "claims.csv")
	if err := os.WriteFile(p, []byte(enc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestLoad_CP949(t *testing.T) {
	p := writeCP949(t, sampleCSV)
	ds, err := Load(p, CP949)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", ds.Len())
	}
	got := ds.Records()[1]
	want := Record{Year: 2023, Disease: "코로나19", Patients: 8100, Claims: 9900, VisitDays: 12000, InsurerPaid: 900000000, TotalCost: 1100000000}
	if got != want {
		t.Fatalf("record mismatch:\n got %+v\nwant %+v", got, want)
	}
	if ds.Path != p || ds.Encoding != CP949 {
		t.Fatalf("unexpected source info: %q %q", ds.Path, ds.Encoding)
	}
}

func TestLoad_ColumnOrderIndependent(t *testing.T) {
	text := "상병명,진료년도,요양급여비용총액(선별포함),환자수,명세서청구건수,입내원일수,보험자부담금(선별포함)\n" +
		"독감,2023,\"1,000\",10,11,12,900\n"
	recs, err := Read(strings.NewReader(text), UTF8)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := Record{Year: 2023, Disease: "독감", Patients: 10, Claims: 11, VisitDays: 12, InsurerPaid: 900, TotalCost: 1000}
	if len(recs) != 1 || recs[0] != want {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestRead_Errors(t *testing.T) {
	header := strings.Join(Headers, ",") + "\n"
	cases := []struct {
		name    string
		text    string
		wantErr error
		wantRow int
		wantCol string
	}{
		{name: "empty", text: "", wantErr: ErrSchema, wantRow: 1},
		{name: "missing column", text: "진료년도,상병명,환자수\n2023,독감,1\n", wantErr: ErrSchema, wantRow: 1},
		{name: "extra column", text: strings.TrimSuffix(header, "\n") + ",비고\n", wantErr: ErrSchema, wantRow: 1},
		{name: "duplicate column", text: "진료년도,진료년도,상병명,환자수,명세서청구건수,입내원일수,보험자부담금(선별포함)\n", wantErr: ErrSchema, wantRow: 1},
		{name: "short row", text: header + "2023,독감,1,2\n", wantErr: ErrSchema, wantRow: 2},
		{name: "non numeric", text: header + "2023,독감,many,2,3,4,5\n", wantErr: ErrInvalidValue, wantRow: 2, wantCol: HeaderPatients},
		{name: "fractional", text: header + "2023,독감,1,2,3,4,5.5\n", wantErr: ErrInvalidValue, wantRow: 2, wantCol: HeaderTotalCost},
		{name: "negative", text: header + "2023,독감,1,-2,3,4,5\n", wantErr: ErrInvalidValue, wantRow: 2, wantCol: HeaderClaims},
		{name: "blank disease", text: header + "2023, ,1,2,3,4,5\n", wantErr: ErrInvalidValue, wantRow: 2, wantCol: HeaderDisease},
		{name: "bad year on third row", text: header + "2023,독감,1,2,3,4,5\n연도,수두,1,2,3,4,5\n", wantErr: ErrInvalidValue, wantRow: 3, wantCol: HeaderYear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.text), UTF8)
			if err == nil {
				t.Fatalf("expected error")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T: %v", err, err)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if le.Row != tc.wantRow {
				t.Fatalf("expected row %d, got %d (%v)", tc.wantRow, le.Row, err)
			}
			if le.Column != tc.wantCol {
				t.Fatalf("expected column %q, got %q", tc.wantCol, le.Column)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.csv")
	_, err := Load(p, CP949)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
	if le.Path != p {
		t.Fatalf("expected path %q in error, got %q", p, le.Path)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, enc := range []Encoding{CP949, UTF8} {
		t.Run(string(enc), func(t *testing.T) {
			in, err := Read(strings.NewReader(sampleCSV), UTF8)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			var buf bytes.Buffer
			if err := Write(&buf, in, enc); err != nil {
				t.Fatalf("Write: %v", err)
			}
			out, err := Read(&buf, enc)
			if err != nil {
				t.Fatalf("re-read: %v", err)
			}
			if !reflect.DeepEqual(in, out) {
				t.Fatalf("round trip mismatch:\n in %+v\nout %+v", in, out)
			}
		})
	}
}

func TestWrite_CP949Bytes(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []Record{{Year: 2023, Disease: "독감"}}, CP949); err != nil {
		t.Fatalf("Write: %v", err)
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(string(decoded), "진료년도,상병명,") {
		t.Fatalf("unexpected header: %q", decoded)
	}
	if bytes.Contains(buf.Bytes(), []byte("독감")) {
		t.Fatalf("output still contains UTF-8 text")
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": CP949, "CP949": CP949, "euc-kr": CP949, "UTF-8": UTF8, "utf8": UTF8} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Fatalf("ParseEncoding(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("latin1"); err == nil {
		t.Fatalf("expected error for latin1")
	}
}
