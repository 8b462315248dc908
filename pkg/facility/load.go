package facility

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, format FormatSpec) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(KindLoad, "open input", err)
	}
	defer f.Close()

	t, err := ReadCSV(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a header row and all records. Non-UTF-8 encodings declared
// in format are transcoded; a leading byte-order mark is dropped. Ragged
// rows are a load error.
func ReadCSV(r io.Reader, format FormatSpec) (*Table, error) {
	var reader io.Reader = r
	if enc := format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, NewError(KindLoad, fmt.Sprintf("unsupported encoding %q", enc), err)
		}
		reader = transform.NewReader(r, e.NewDecoder())
	} else {
		reader = transform.NewReader(r, xunicode.BOMOverride(transform.Nop))
	}

	cr := csv.NewReader(reader)
	if delim := format.Delimiter; delim != "" {
		cr.Comma = []rune(delim)[0]
	}
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, NewError(KindLoad, "read header", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewError(KindLoad, "read row", err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
