package excel

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// previewLimit caps rows and columns returned in preview mode.
const previewLimit = 5

// Cell is the serialized form of a single cell returned by ReadRange.
type Cell struct {
	Address      string     `json:"address"`
	Row          int        `json:"row"`
	Column       int        `json:"column"`
	ColumnLetter string     `json:"column_letter"`
	Value        string     `json:"value"`
	Calculated   string     `json:"calculated,omitempty"`
	Formula      string     `json:"formula,omitempty"`
	HasFormula   bool       `json:"has_formula"`
	Type         string     `json:"cell_type,omitempty"`
	Style        *CellStyle `json:"style,omitempty"`
	IsMerged     bool       `json:"is_merged,omitempty"`
	MergeArea    *MergeArea `json:"merge_area,omitempty"`
}

// CellStyle carries the style attributes of a cell.
type CellStyle struct {
	Font                *FontStyle `json:"font,omitempty"`
	HorizontalAlignment string     `json:"horizontal_alignment,omitempty"`
	VerticalAlignment   string     `json:"vertical_alignment,omitempty"`
	WrapText            bool       `json:"wrap_text,omitempty"`
	FillColor           string     `json:"fill_color,omitempty"`
	NumberFormat        string     `json:"number_format,omitempty"`
	Locked              *bool      `json:"locked,omitempty"`
	HiddenFormula       bool       `json:"hidden_formula,omitempty"`
}

// FontStyle carries the font attributes of a cell style.
type FontStyle struct {
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline string  `json:"underline,omitempty"`
	Name      string  `json:"name,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// MergeArea describes the bounds of a merged region containing a cell.
type MergeArea struct {
	FirstRow    int `json:"first_row"`
	FirstColumn int `json:"first_column"`
	LastRow     int `json:"last_row"`
	LastColumn  int `json:"last_column"`
}

// RangeData is a column-first mapping: data[columnLetter][rowNumber] -> Cell.
type RangeData map[string]map[string]Cell

// ReadRange reads a cell range and returns it column-first, so callers can
// address cells as data[columnLetter][row]. In preview mode the result is
// truncated to the first 5x5 cells and style detail is omitted.
func ReadRange(path, sheet, cellRange string, previewOnly bool) (RangeData, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, opErr("read range", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return nil, opErr("read range", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return nil, opErr("read range", path, err)
	}

	if previewOnly {
		if bounds.Rows() > previewLimit {
			bounds.EndRow = bounds.StartRow + previewLimit - 1
		}
		if bounds.Cols() > previewLimit {
			bounds.EndCol = bounds.StartCol + previewLimit - 1
		}
	}

	merges, err := mergeAreas(f, sheet)
	if err != nil {
		return nil, opErr("read range", path, err)
	}

	data := make(RangeData)
	for col := bounds.StartCol; col <= bounds.EndCol; col++ {
		colLetter := ColumnLetter(col)
		data[colLetter] = make(map[string]Cell)

		for row := bounds.StartRow; row <= bounds.EndRow; row++ {
			cell, err := serializeCell(f, sheet, col, row, !previewOnly, merges)
			if err != nil {
				return nil, opErr("read range", path, err)
			}
			data[colLetter][strconv.Itoa(row)] = cell
		}
	}

	return data, nil
}

// WriteData writes a 2-D matrix of values into a sheet starting at startCell.
// The sheet is created when missing; the workbook is created when the file
// does not exist yet.
func WriteData(path, sheet string, data [][]any, startCell string) error {
	f, err := openOrCreateWorkbook(path)
	if err != nil {
		return opErr("write data", path, err)
	}
	defer f.Close()

	if err := ensureSheet(f, sheet); err != nil {
		return opErr("write data", path, err)
	}

	start, err := ParseRange(startCell)
	if err != nil {
		return opErr("write data", path, err)
	}

	for i, row := range data {
		for j, value := range row {
			name, err := excelize.CoordinatesToCellName(start.StartCol+j, start.StartRow+i)
			if err != nil {
				return opErr("write data", path, err)
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return opErr("write data", path, err)
			}
		}
	}

	if err := saveWorkbook(f, path); err != nil {
		return opErr("write data", path, err)
	}
	return nil
}

// mergeAreas returns the merged regions of a sheet as parsed bounds.
func mergeAreas(f *excelize.File, sheet string) ([]RangeBounds, error) {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	areas := make([]RangeBounds, 0, len(merged))
	for _, m := range merged {
		bounds, err := ParseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			continue
		}
		areas = append(areas, bounds)
	}
	return areas, nil
}

func serializeCell(f *excelize.File, sheet string, col, row int, withStyle bool, merges []RangeBounds) (Cell, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}

	value, err := f.GetCellValue(sheet, name)
	if err != nil {
		return Cell{}, err
	}

	cell := Cell{
		Address:      name,
		Row:          row,
		Column:       col,
		ColumnLetter: ColumnLetter(col),
		Value:        value,
	}

	if formula, err := f.GetCellFormula(sheet, name); err == nil && formula != "" {
		cell.Formula = formula
		cell.HasFormula = true
		// Engine-evaluated result; evaluation errors are non-fatal.
		if calc, err := f.CalcCellValue(sheet, name); err == nil {
			cell.Calculated = calc
		}
	}

	if cellType, err := f.GetCellType(sheet, name); err == nil {
		cell.Type = cellTypeName(cellType)
	}

	for _, area := range merges {
		if row >= area.StartRow && row <= area.EndRow && col >= area.StartCol && col <= area.EndCol {
			cell.IsMerged = true
			cell.MergeArea = &MergeArea{
				FirstRow:    area.StartRow,
				FirstColumn: area.StartCol,
				LastRow:     area.EndRow,
				LastColumn:  area.EndCol,
			}
			break
		}
	}

	if withStyle {
		style, err := readCellStyle(f, sheet, name)
		if err != nil {
			return Cell{}, err
		}
		cell.Style = style
	}

	return cell, nil
}

func readCellStyle(f *excelize.File, sheet, cell string) (*CellStyle, error) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return nil, err
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return nil, err
	}

	out := &CellStyle{}
	if font := style.Font; font != nil {
		out.Font = &FontStyle{
			Bold:      font.Bold,
			Italic:    font.Italic,
			Underline: font.Underline,
			Name:      font.Family,
			Size:      font.Size,
			Color:     font.Color,
		}
	}
	if align := style.Alignment; align != nil {
		out.HorizontalAlignment = align.Horizontal
		out.VerticalAlignment = align.Vertical
		out.WrapText = align.WrapText
	}
	if len(style.Fill.Color) > 0 {
		out.FillColor = style.Fill.Color[0]
	}
	if style.CustomNumFmt != nil {
		out.NumberFormat = *style.CustomNumFmt
	}
	if prot := style.Protection; prot != nil {
		locked := prot.Locked
		out.Locked = &locked
		out.HiddenFormula = prot.Hidden
	}

	if *out == (CellStyle{}) {
		return nil, nil
	}
	return out, nil
}

func cellTypeName(t excelize.CellType) string {
	switch t {
	case excelize.CellTypeBool:
		return "bool"
	case excelize.CellTypeDate:
		return "date"
	case excelize.CellTypeError:
		return "error"
	case excelize.CellTypeFormula:
		return "formula"
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return "string"
	case excelize.CellTypeNumber:
		return "number"
	default:
		return "unset"
	}
}
