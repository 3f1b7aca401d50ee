package feed

import (
	"fmt"
	"strings"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// Columns names the header cells of the three columns a feed must carry.
type Columns struct {
	Code     string
	Quantity string
	Price    string
}

// Layout locates the data inside a sheet.
type Layout struct {
	HeaderRow int // zero-based
	Columns   Columns
}

// rowSource walks the rows of a sheet.
type rowSource interface {
	Len() int
	Row(i int) []string
}

// extract reads records from rows below the header. Rows with an empty code
// are skipped. The quantity and price cells are passed through untouched.
func extract(rows rowSource, layout Layout) ([]inventory.Record, error) {
	if layout.HeaderRow >= rows.Len() {
		return nil, fmt.Errorf("header row %d beyond the last row %d", layout.HeaderRow, rows.Len()-1)
	}

	header := rows.Row(layout.HeaderRow)
	code, err := column(header, layout.Columns.Code)
	if err != nil {
		return nil, err
	}
	quantity, err := column(header, layout.Columns.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := column(header, layout.Columns.Price)
	if err != nil {
		return nil, err
	}

	records := make([]inventory.Record, 0, rows.Len()-layout.HeaderRow-1)
	for i := layout.HeaderRow + 1; i < rows.Len(); i++ {
		row := rows.Row(i)
		rec := inventory.Record{
			Code:     normalizeCode(cell(row, code)),
			Quantity: strings.TrimSpace(cell(row, quantity)),
			Price:    cell(row, price),
		}
		if rec.Code == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// column finds name in the header row, ignoring case and surrounding space.
func column(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %q", name, header)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// normalizeCode trims a code and drops the ".0" spreadsheets append to
// integer codes stored as numbers.
func normalizeCode(s string) string {
	s = strings.TrimSpace(s)
	if head, ok := strings.CutSuffix(s, ".0"); ok && head != "" && strings.Trim(head, "0123456789") == "" {
		return head
	}
	return s
}

// matrix is an in-memory rowSource.
type matrix [][]string

func (m matrix) Len() int           { return len(m) }
func (m matrix) Row(i int) []string { return m[i] }
