package feed

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// ParseCSV reads records from a delimited text export of the feed.
// The delimiter (';' or ',') is detected from the first line.
func ParseCSV(r io.Reader, charset string, layout Layout) ([]inventory.Record, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(transform.NewReader(r, enc.NewDecoder()))
	first, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if line, _, ok := bytes.Cut(first, []byte("\n")); ok {
		first = line
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		reader.Comma = ';'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return extract(matrix(rows), layout)
}

// lookupEncoding maps a charset name onto a decoder.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r":
		return charmap.KOI8R, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", charset)
	}
}
