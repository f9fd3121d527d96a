package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CopySheet duplicates a worksheet within the same workbook under a new name.
func CopySheet(path, sourceSheet, targetSheet string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("copy sheet", path, err)
	}
	defer f.Close()

	srcIdx, err := f.GetSheetIndex(sourceSheet)
	if err != nil {
		return opErr("copy sheet", path, err)
	}
	if srcIdx < 0 {
		return opErr("copy sheet", path, fmt.Errorf("%w: %q", ErrSheetNotFound, sourceSheet))
	}

	if idx, err := f.GetSheetIndex(targetSheet); err != nil {
		return opErr("copy sheet", path, err)
	} else if idx >= 0 {
		return opErr("copy sheet", path, fmt.Errorf("%w: %q", ErrSheetExists, targetSheet))
	}

	dstIdx, err := f.NewSheet(targetSheet)
	if err != nil {
		return opErr("copy sheet", path, err)
	}
	if err := f.CopySheet(srcIdx, dstIdx); err != nil {
		return opErr("copy sheet", path, err)
	}

	if err := f.Save(); err != nil {
		return opErr("copy sheet", path, err)
	}
	return nil
}

// DeleteSheet removes a worksheet. Deleting the only sheet in a workbook is
// refused so the file stays loadable.
func DeleteSheet(path, sheet string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("delete sheet", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("delete sheet", path, err)
	}
	if len(f.GetSheetList()) == 1 {
		return opErr("delete sheet", path, ErrLastSheet)
	}

	if err := f.DeleteSheet(sheet); err != nil {
		return opErr("delete sheet", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("delete sheet", path, err)
	}
	return nil
}

// RenameSheet renames a worksheet. Renaming onto an existing name is refused.
func RenameSheet(path, oldName, newName string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("rename sheet", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, oldName); err != nil {
		return opErr("rename sheet", path, err)
	}
	if idx, err := f.GetSheetIndex(newName); err != nil {
		return opErr("rename sheet", path, err)
	} else if idx >= 0 {
		return opErr("rename sheet", path, fmt.Errorf("%w: %q", ErrSheetExists, newName))
	}

	if err := f.SetSheetName(oldName, newName); err != nil {
		return opErr("rename sheet", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("rename sheet", path, err)
	}
	return nil
}

// MergeCells merges every range in cellRanges within a sheet.
func MergeCells(path, sheet string, cellRanges []string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("merge cells", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("merge cells", path, err)
	}

	for _, ref := range cellRanges {
		bounds, err := ParseRange(ref)
		if err != nil {
			return opErr("merge cells", path, err)
		}
		start, _ := excelize.CoordinatesToCellName(bounds.StartCol, bounds.StartRow)
		end, _ := excelize.CoordinatesToCellName(bounds.EndCol, bounds.EndRow)
		if err := f.MergeCell(sheet, start, end); err != nil {
			return opErr("merge cells", path, err)
		}
	}

	if err := f.Save(); err != nil {
		return opErr("merge cells", path, err)
	}
	return nil
}

// UnmergeCells splits a previously merged range back into independent cells.
func UnmergeCells(path, sheet, cellRange string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("unmerge cells", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("unmerge cells", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return opErr("unmerge cells", path, err)
	}
	start, _ := excelize.CoordinatesToCellName(bounds.StartCol, bounds.StartRow)
	end, _ := excelize.CoordinatesToCellName(bounds.EndCol, bounds.EndRow)

	if err := f.UnmergeCell(sheet, start, end); err != nil {
		return opErr("unmerge cells", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("unmerge cells", path, err)
	}
	return nil
}

// CopyRange copies the values, formulas, and styles of sourceRange to the
// position given by targetRange, optionally into a different sheet. The
// engine exposes no range-copy primitive, so the copy is cell by cell.
func CopyRange(path, sheet, sourceRange, targetRange, targetSheet string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("copy range", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("copy range", path, err)
	}
	dstSheet := sheet
	if targetSheet != "" {
		if err := requireSheet(f, targetSheet); err != nil {
			return opErr("copy range", path, err)
		}
		dstSheet = targetSheet
	}

	src, err := ParseRange(sourceRange)
	if err != nil {
		return opErr("copy range", path, err)
	}
	dst, err := ParseRange(targetRange)
	if err != nil {
		return opErr("copy range", path, err)
	}

	for r := 0; r < src.Rows(); r++ {
		for c := 0; c < src.Cols(); c++ {
			srcCell, err := excelize.CoordinatesToCellName(src.StartCol+c, src.StartRow+r)
			if err != nil {
				return opErr("copy range", path, err)
			}
			dstCell, err := excelize.CoordinatesToCellName(dst.StartCol+c, dst.StartRow+r)
			if err != nil {
				return opErr("copy range", path, err)
			}
			if err := copyCell(f, sheet, srcCell, dstSheet, dstCell); err != nil {
				return opErr("copy range", path, err)
			}
		}
	}

	if err := f.Save(); err != nil {
		return opErr("copy range", path, err)
	}
	return nil
}

// DeleteRange clears a range and shifts the remaining cells up or left.
// The engine only removes whole rows or columns, so the shift is performed
// cell by cell within the affected band.
func DeleteRange(path, sheet, cellRange, shiftDirection string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("delete range", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("delete range", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return opErr("delete range", path, err)
	}

	lastRow, lastCol, err := dataBounds(f, sheet)
	if err != nil {
		return opErr("delete range", path, err)
	}

	switch strings.ToLower(shiftDirection) {
	case "", "up":
		err = shiftUp(f, sheet, bounds, lastRow)
	case "left":
		err = shiftLeft(f, sheet, bounds, lastCol)
	default:
		err = fmt.Errorf("invalid shift direction %q (must be \"up\" or \"left\")", shiftDirection)
	}
	if err != nil {
		return opErr("delete range", path, err)
	}

	if err := f.Save(); err != nil {
		return opErr("delete range", path, err)
	}
	return nil
}

// shiftUp moves every cell below the deleted band up by its height and
// clears the vacated tail rows.
func shiftUp(f *excelize.File, sheet string, b RangeBounds, lastRow int) error {
	height := b.Rows()
	for col := b.StartCol; col <= b.EndCol; col++ {
		for row := b.StartRow; row+height <= lastRow+height; row++ {
			if row+height <= lastRow {
				if err := moveCell(f, sheet, col, row+height, col, row); err != nil {
					return err
				}
			} else if err := clearCell(f, sheet, col, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// shiftLeft moves every cell to the right of the deleted band left by its
// width and clears the vacated tail columns.
func shiftLeft(f *excelize.File, sheet string, b RangeBounds, lastCol int) error {
	width := b.Cols()
	for row := b.StartRow; row <= b.EndRow; row++ {
		for col := b.StartCol; col+width <= lastCol+width; col++ {
			if col+width <= lastCol {
				if err := moveCell(f, sheet, col+width, row, col, row); err != nil {
					return err
				}
			} else if err := clearCell(f, sheet, col, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyCell(f *excelize.File, srcSheet, srcCell, dstSheet, dstCell string) error {
	if formula, err := f.GetCellFormula(srcSheet, srcCell); err == nil && formula != "" {
		if err := f.SetCellFormula(dstSheet, dstCell, formula); err != nil {
			return err
		}
	} else {
		value, err := f.GetCellValue(srcSheet, srcCell)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(dstSheet, dstCell, value); err != nil {
			return err
		}
	}

	styleID, err := f.GetCellStyle(srcSheet, srcCell)
	if err != nil {
		return err
	}
	if styleID != 0 {
		return f.SetCellStyle(dstSheet, dstCell, dstCell, styleID)
	}
	return nil
}

func moveCell(f *excelize.File, sheet string, srcCol, srcRow, dstCol, dstRow int) error {
	srcCell, err := excelize.CoordinatesToCellName(srcCol, srcRow)
	if err != nil {
		return err
	}
	dstCell, err := excelize.CoordinatesToCellName(dstCol, dstRow)
	if err != nil {
		return err
	}
	if err := copyCell(f, sheet, srcCell, sheet, dstCell); err != nil {
		return err
	}
	return blankCell(f, sheet, srcCell)
}

func clearCell(f *excelize.File, sheet string, col, row int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return blankCell(f, sheet, cell)
}

func blankCell(f *excelize.File, sheet, cell string) error {
	if err := f.SetCellFormula(sheet, cell, ""); err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, nil)
}
