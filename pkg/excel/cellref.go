package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RangeBounds holds the 1-based coordinates of a rectangular cell range.
type RangeBounds struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Rows returns the number of rows covered by the range.
func (b RangeBounds) Rows() int { return b.EndRow - b.StartRow + 1 }

// Cols returns the number of columns covered by the range.
func (b RangeBounds) Cols() int { return b.EndCol - b.StartCol + 1 }

// Ref returns the range in A1:B2 notation.
func (b RangeBounds) Ref() string {
	start, _ := excelize.CoordinatesToCellName(b.StartCol, b.StartRow)
	end, _ := excelize.CoordinatesToCellName(b.EndCol, b.EndRow)
	return start + ":" + end
}

// ParseRange parses a cell reference such as "A1" or "A1:D10" into bounds.
// A single cell yields a 1x1 range. Reversed corners are normalized.
func ParseRange(ref string) (RangeBounds, error) {
	start, end, ok := strings.Cut(ref, ":")
	if !ok {
		end = start
	}

	c1, r1, err := excelize.CellNameToCoordinates(strings.TrimSpace(start))
	if err != nil {
		return RangeBounds{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	c2, r2, err := excelize.CellNameToCoordinates(strings.TrimSpace(end))
	if err != nil {
		return RangeBounds{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}

	return RangeBounds{StartRow: r1, StartCol: c1, EndRow: r2, EndCol: c2}, nil
}

// ColumnLetter converts a 1-based column number to its letter form (1 -> "A").
func ColumnLetter(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// absRangeRef builds a sheet-qualified absolute reference, e.g.
// "Sheet1!$A$2:$A$10", as required by chart series and pivot ranges.
func absRangeRef(sheet string, startCol, startRow, endCol, endRow int) string {
	start, _ := excelize.CoordinatesToCellName(startCol, startRow, true)
	end, _ := excelize.CoordinatesToCellName(endCol, endRow, true)
	return fmt.Sprintf("%s!%s:%s", sheet, start, end)
}

// dataBounds scans a sheet for the bounding box of non-empty cells and
// returns the last row and column holding data. Zeros mean an empty sheet.
func dataBounds(f *excelize.File, sheet string) (lastRow, lastCol int, err error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if rowIdx+1 > lastRow {
				lastRow = rowIdx + 1
			}
			if colIdx+1 > lastCol {
				lastCol = colIdx + 1
			}
		}
	}

	return lastRow, lastCol, nil
}

// usedRange returns the used data range of a sheet in A1 notation, or ""
// for an empty sheet.
func usedRange(f *excelize.File, sheet string) (string, error) {
	lastRow, lastCol, err := dataBounds(f, sheet)
	if err != nil {
		return "", err
	}
	if lastRow == 0 || lastCol == 0 {
		return "", nil
	}
	return fmt.Sprintf("A1:%s%d", ColumnLetter(lastCol), lastRow), nil
}
