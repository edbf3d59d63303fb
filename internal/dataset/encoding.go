package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Encoding names the byte encoding of the input and export files.
type Encoding string

const (
	// CP949 is the legacy Korean code page the published dataset ships in.
	CP949 Encoding = "cp949"
	// UTF8 is accepted for files that were migrated off the legacy encoding.
	UTF8 Encoding = "utf-8"
)

// ParseEncoding accepts the common spellings of the supported encodings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cp949", "ms949", "euc-kr", "euckr", "windows-949":
		return CP949, nil
	case "utf-8", "utf8":
		return UTF8, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s (use cp949 or utf-8)", s)
	}
}

// reader wraps r so that it yields UTF-8 text.
func (e Encoding) reader(r io.Reader) io.Reader {
	if e == UTF8 {
		br := bufio.NewReader(r)
		if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
			_, _ = br.Discard(3)
		}
		return br
	}
	// x/text's EUC-KR is the WHATWG definition, which is the full CP949 table.
	return transform.NewReader(r, korean.EUCKR.NewDecoder())
}

// writer wraps w so that UTF-8 text is encoded on the way out. Close flushes
// any buffered bytes but does not close w.
func (e Encoding) writer(w io.Writer) io.WriteCloser {
	if e == UTF8 {
		return nopCloser{w}
	}
	return transform.NewWriter(w, korean.EUCKR.NewEncoder())
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
