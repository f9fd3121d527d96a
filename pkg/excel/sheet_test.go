package excel

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sheetCellValue(t *testing.T, path, sheet, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s) failed: %v", sheet, cell, err)
	}
	return v
}

func TestCopySheet(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "keep"})

	if err := CopySheet(path, "Sheet1", "Copy"); err != nil {
		t.Fatalf("CopySheet failed: %v", err)
	}
	if got := sheetCellValue(t, path, "Copy", "A1"); got != "keep" {
		t.Errorf("Copy!A1 = %q, expected keep", got)
	}

	if err := CopySheet(path, "Sheet1", "Copy"); !errors.Is(err, ErrSheetExists) {
		t.Errorf("Expected ErrSheetExists, got %v", err)
	}
	if err := CopySheet(path, "Nope", "Other"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
}

func TestDeleteSheet(t *testing.T) {
	path := newTestWorkbook(t, nil)

	if err := DeleteSheet(path, "Sheet1"); !errors.Is(err, ErrLastSheet) {
		t.Errorf("Expected ErrLastSheet, got %v", err)
	}

	if err := CreateSheet(path, "Second"); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if err := DeleteSheet(path, "Second"); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}

	meta, err := GetWorkbookMetadata(path, false)
	if err != nil {
		t.Fatalf("GetWorkbookMetadata failed: %v", err)
	}
	if len(meta.Sheets) != 1 {
		t.Errorf("Expected 1 sheet after delete, got %v", meta.Sheets)
	}
}

func TestRenameSheet(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "x"})

	if err := RenameSheet(path, "Sheet1", "Renamed"); err != nil {
		t.Fatalf("RenameSheet failed: %v", err)
	}
	if got := sheetCellValue(t, path, "Renamed", "A1"); got != "x" {
		t.Errorf("Renamed!A1 = %q, expected x", got)
	}

	if err := CreateSheet(path, "Other"); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if err := RenameSheet(path, "Other", "Renamed"); !errors.Is(err, ErrSheetExists) {
		t.Errorf("Expected ErrSheetExists, got %v", err)
	}
}

func TestMergeUnmergeRoundTrip(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "head"})

	if err := MergeCells(path, "Sheet1", []string{"A1:B2", "D1:E1"}); err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	merged, err := f.GetMergeCells("Sheet1")
	f.Close()
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("Expected 2 merged ranges, got %d", len(merged))
	}

	if err := UnmergeCells(path, "Sheet1", "A1:B2"); err != nil {
		t.Fatalf("UnmergeCells failed: %v", err)
	}

	f, err = excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	merged, err = f.GetMergeCells("Sheet1")
	f.Close()
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	if len(merged) != 1 {
		t.Errorf("Expected 1 merged range after unmerge, got %d", len(merged))
	}
}

func TestCopyRange(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{
		"A1": "a", "B1": "b",
		"A2": 1, "B2": 2,
	})

	if err := CopyRange(path, "Sheet1", "A1:B2", "D5", ""); err != nil {
		t.Fatalf("CopyRange failed: %v", err)
	}
	if got := sheetCellValue(t, path, "Sheet1", "D5"); got != "a" {
		t.Errorf("D5 = %q, expected a", got)
	}
	if got := sheetCellValue(t, path, "Sheet1", "E6"); got != "2" {
		t.Errorf("E6 = %q, expected 2", got)
	}
}

func TestCopyRangeAcrossSheets(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "src"})
	if err := CreateSheet(path, "Dst"); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}

	if err := CopyRange(path, "Sheet1", "A1", "C3", "Dst"); err != nil {
		t.Fatalf("CopyRange failed: %v", err)
	}
	if got := sheetCellValue(t, path, "Dst", "C3"); got != "src" {
		t.Errorf("Dst!C3 = %q, expected src", got)
	}
}

func TestDeleteRangeShiftUp(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{
		"A1": "r1", "A2": "r2", "A3": "r3",
	})

	if err := DeleteRange(path, "Sheet1", "A1", "up"); err != nil {
		t.Fatalf("DeleteRange failed: %v", err)
	}

	if got := sheetCellValue(t, path, "Sheet1", "A1"); got != "r2" {
		t.Errorf("A1 = %q, expected r2", got)
	}
	if got := sheetCellValue(t, path, "Sheet1", "A2"); got != "r3" {
		t.Errorf("A2 = %q, expected r3", got)
	}
	if got := sheetCellValue(t, path, "Sheet1", "A3"); got != "" {
		t.Errorf("A3 = %q, expected empty after shift", got)
	}
}

func TestDeleteRangeShiftLeft(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{
		"A1": "c1", "B1": "c2", "C1": "c3",
	})

	if err := DeleteRange(path, "Sheet1", "A1", "left"); err != nil {
		t.Fatalf("DeleteRange failed: %v", err)
	}

	if got := sheetCellValue(t, path, "Sheet1", "A1"); got != "c2" {
		t.Errorf("A1 = %q, expected c2", got)
	}
	if got := sheetCellValue(t, path, "Sheet1", "C1"); got != "" {
		t.Errorf("C1 = %q, expected empty after shift", got)
	}
}

func TestDeleteRangeInvalidDirection(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "x"})
	if err := DeleteRange(path, "Sheet1", "A1", "sideways"); err == nil {
		t.Error("Expected error for invalid shift direction")
	}
}
