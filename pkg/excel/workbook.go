// Package excel adapts the excelize engine to the fixed operation catalog
// served over MCP. Every operation opens its own workbook handle, mutates it,
// and saves on the full-success path only; nothing is cached across calls.
package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// WorkbookMetadata describes a workbook file and its sheets.
type WorkbookMetadata struct {
	Filename   string            `json:"filename"`
	Sheets     []string          `json:"sheets"`
	Size       int64             `json:"size"`
	Modified   int64             `json:"modified"`
	UsedRanges map[string]string `json:"used_ranges,omitempty"`
}

// openWorkbook opens an existing workbook, mapping a missing file to
// ErrFileNotFound. Callers must Close the returned file.
func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return excelize.OpenFile(path)
}

// openOrCreateWorkbook opens an existing workbook or returns a fresh
// in-memory one when the file does not exist yet.
func openOrCreateWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err == nil {
		return excelize.OpenFile(path)
	}
	return excelize.NewFile(), nil
}

// saveWorkbook persists a workbook at path, creating parent directories.
func saveWorkbook(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// requireSheet verifies a worksheet exists.
func requireSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return nil
}

// ensureSheet returns after making sure the worksheet exists, creating it
// when missing. Used by the operations that the catalog documents as
// creating their target sheet on demand.
func ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx >= 0 {
		return nil
	}
	_, err = f.NewSheet(sheet)
	return err
}

// CreateWorkbook creates a new workbook at path with a single worksheet.
// When sheetName is empty the engine default name is kept.
func CreateWorkbook(path, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "" && sheetName != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
			return opErr("create workbook", path, err)
		}
	}

	if err := saveWorkbook(f, path); err != nil {
		return opErr("create workbook", path, err)
	}
	return nil
}

// CreateSheet adds a new worksheet to an existing workbook. Adding a sheet
// whose name is already taken is refused.
func CreateSheet(path, sheetName string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("create sheet", path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return opErr("create sheet", path, err)
	}
	if idx >= 0 {
		return opErr("create sheet", path, fmt.Errorf("%w: %q", ErrSheetExists, sheetName))
	}

	if _, err := f.NewSheet(sheetName); err != nil {
		return opErr("create sheet", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("create sheet", path, err)
	}
	return nil
}

// GetWorkbookMetadata reports filename, sheet list, size, and modification
// time for a workbook. With includeRanges the used data range of every
// sheet is included.
func GetWorkbookMetadata(path string, includeRanges bool) (*WorkbookMetadata, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, opErr("workbook metadata", path, fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}
	if err != nil {
		return nil, opErr("workbook metadata", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, opErr("workbook metadata", path, err)
	}
	defer f.Close()

	meta := &WorkbookMetadata{
		Filename: filepath.Base(path),
		Sheets:   f.GetSheetList(),
		Size:     info.Size(),
		Modified: info.ModTime().Unix(),
	}

	if includeRanges {
		meta.UsedRanges = make(map[string]string)
		for _, sheet := range meta.Sheets {
			ref, err := usedRange(f, sheet)
			if err != nil {
				return nil, opErr("workbook metadata", path, err)
			}
			if ref != "" {
				meta.UsedRanges[sheet] = ref
			}
		}
	}

	return meta, nil
}
