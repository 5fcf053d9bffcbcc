package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mahalpos/pos-api/internal/domain/inventory"
)

// Recognized header names, compared case-insensitively after trimming.
const (
	colBarcode   = "barcode"
	colName      = "product name"
	colWholesale = "wholesale price"
	colRetail    = "retail price"
	colQuantity  = "quantity"
)

// ParseWorkbook reads the first sheet of an .xlsx stock file into import rows.
// The first row must be a header naming the columns above (any order, extra
// columns ignored). Rows with no barcode or name are dropped here; the merge
// step applies the rest of the validation.
func ParseWorkbook(r io.Reader) ([]inventory.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, cell := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	for _, required := range []string{colBarcode, colName, colQuantity} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var out []inventory.ImportRow
	for _, row := range rows[1:] {
		barcode := strings.TrimSpace(cellAt(row, idx, colBarcode))
		name := strings.TrimSpace(cellAt(row, idx, colName))
		if barcode == "" || name == "" {
			continue
		}
		out = append(out, inventory.ImportRow{
			SKU:   barcode,
			Name:  name,
			Qty:   parseIntCell(cellAt(row, idx, colQuantity)),
			Price: parseFloatCell(cellAt(row, idx, colRetail)),
			Cost:  parseFloatCell(cellAt(row, idx, colWholesale)),
		})
	}
	return out, nil
}

func cellAt(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseIntCell(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Sheets exported from other tools often format counts as "5.0".
		f := parseFloatCell(s)
		return int(f)
	}
	return n
}

func parseFloatCell(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
