package excel

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestWriteDataReadRangeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")

	data := [][]any{
		{"Name", "Score"},
		{"alpha", 10},
		{"beta", 20.5},
	}
	if err := WriteData(path, "Sheet1", data, "A1"); err != nil {
		t.Fatalf("WriteData failed: %v", err)
	}

	got, err := ReadRange(path, "Sheet1", "A1:B3", false)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	if got["A"]["1"].Value != "Name" {
		t.Errorf("A1 = %q, expected Name", got["A"]["1"].Value)
	}
	if got["B"]["2"].Value != "10" {
		t.Errorf("B2 = %q, expected 10", got["B"]["2"].Value)
	}
	if got["B"]["3"].Value != "20.5" {
		t.Errorf("B3 = %q, expected 20.5", got["B"]["3"].Value)
	}

	cell := got["A"]["2"]
	if cell.Address != "A2" || cell.Row != 2 || cell.Column != 1 || cell.ColumnLetter != "A" {
		t.Errorf("Unexpected cell coordinates: %+v", cell)
	}
}

func TestWriteDataCreatesFileAndSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "created.xlsx")

	if err := WriteData(path, "Fresh", [][]any{{"v"}}, "B2"); err != nil {
		t.Fatalf("WriteData failed: %v", err)
	}

	got, err := ReadRange(path, "Fresh", "B2", false)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	if got["B"]["2"].Value != "v" {
		t.Errorf("B2 = %q, expected v", got["B"]["2"].Value)
	}
}

func TestReadRangePreviewTruncates(t *testing.T) {
	matrix := make([][]any, 10)
	for i := range matrix {
		matrix[i] = []any{i, i, i, i, i, i, i}
	}
	path := filepath.Join(t.TempDir(), "preview.xlsx")
	if err := WriteData(path, "Sheet1", matrix, "A1"); err != nil {
		t.Fatalf("WriteData failed: %v", err)
	}

	got, err := ReadRange(path, "Sheet1", "A1:G10", true)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	if len(got) != 5 {
		t.Errorf("Expected 5 columns in preview, got %d", len(got))
	}
	if len(got["A"]) != 5 {
		t.Errorf("Expected 5 rows in preview, got %d", len(got["A"]))
	}
	if _, ok := got["F"]; ok {
		t.Error("Column F should be truncated from preview")
	}
}

func TestReadRangeFormula(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": 2, "A2": 3})
	if _, err := ApplyFormula(path, "Sheet1", "A3", "=SUM(A1:A2)"); err != nil {
		t.Fatalf("ApplyFormula failed: %v", err)
	}

	got, err := ReadRange(path, "Sheet1", "A3", false)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	cell := got["A"]["3"]
	if !cell.HasFormula {
		t.Fatal("Expected A3 to report a formula")
	}
	if cell.Formula != "SUM(A1:A2)" {
		t.Errorf("Formula = %q", cell.Formula)
	}
	if cell.Calculated != "5" {
		t.Errorf("Calculated = %q, expected 5", cell.Calculated)
	}
}

func TestReadRangeMergedCells(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "title"})
	if err := MergeCells(path, "Sheet1", []string{"A1:B2"}); err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}

	got, err := ReadRange(path, "Sheet1", "A1:C2", false)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	if !got["B"]["2"].IsMerged {
		t.Error("B2 should be inside the merged area")
	}
	area := got["A"]["1"].MergeArea
	if area == nil || area.LastRow != 2 || area.LastColumn != 2 {
		t.Errorf("Unexpected merge area: %+v", area)
	}
	if got["C"]["1"].IsMerged {
		t.Error("C1 should be outside the merged area")
	}
}

func TestReadRangeMissingSheet(t *testing.T) {
	path := newTestWorkbook(t, nil)
	if _, err := ReadRange(path, "Nope", "A1", false); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
}

func TestReadRangeMissingFile(t *testing.T) {
	_, err := ReadRange(filepath.Join(t.TempDir(), "no.xlsx"), "Sheet1", "A1", false)
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}
