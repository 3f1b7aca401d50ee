package feed

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// ParseXLS reads records from a legacy Excel (BIFF) workbook.
func ParseXLS(r io.ReadSeeker, sheet int, layout Layout) ([]inventory.Record, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if sheet < 0 || sheet >= wb.NumSheets() {
		return nil, fmt.Errorf("sheet %d not found (workbook has %d)", sheet, wb.NumSheets())
	}
	ws := wb.GetSheet(sheet)
	if ws == nil {
		return nil, fmt.Errorf("sheet %d is empty", sheet)
	}
	return extract(&xlsRows{sheet: ws}, layout)
}

// xlsRows adapts a worksheet to rowSource.
type xlsRows struct {
	sheet *xls.WorkSheet
}

func (x *xlsRows) Len() int {
	return int(x.sheet.MaxRow) + 1
}

func (x *xlsRows) Row(i int) []string {
	row := x.sheet.Row(i)
	if row == nil {
		return nil
	}
	cells := make([]string, 0, row.LastCol())
	for c := 0; c < row.LastCol(); c++ {
		cells = append(cells, row.Col(c))
	}
	return cells
}
