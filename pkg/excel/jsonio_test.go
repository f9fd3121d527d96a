package excel

import (
	"encoding/json"
	"testing"
)

func TestExportJSONObjects(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{
		"A1": "Name", "B1": "Score",
		"A2": "a", "B2": 1,
		"A3": "b", "B3": 2,
	})

	out, err := ExportJSON(path, "Sheet1", "A1:B3", ExportJSONOptions{Headers: true})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var rows []map[string]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Name"] != "a" || rows[0]["Score"] != "1" {
		t.Errorf("Unexpected first row: %v", rows[0])
	}
}

func TestExportJSONArrayFormat(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "x", "B1": "y"})

	out, err := ExportJSON(path, "Sheet1", "A1:B1", ExportJSONOptions{ArrayFormat: true})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "x" || rows[0][1] != "y" {
		t.Errorf("Unexpected output: %v", rows)
	}
}

func TestExportJSONSynthesizedHeaders(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "v1", "B1": "v2"})

	out, err := ExportJSON(path, "Sheet1", "A1:B1", ExportJSONOptions{})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var rows []map[string]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if rows[0]["Column1"] != "v1" || rows[0]["Column2"] != "v2" {
		t.Errorf("Expected synthesized Column{n} keys, got %v", rows[0])
	}
}

func TestExportJSONDefaultsToUsedRange(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "a", "B2": "b"})

	out, err := ExportJSON(path, "Sheet1", "", ExportJSONOptions{ArrayFormat: true})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Errorf("Expected 2x2 matrix, got %v", rows)
	}
}

func TestImportJSONObjectArray(t *testing.T) {
	path := newTestWorkbook(t, nil)

	doc := json.RawMessage(`[{"name":"a","score":1},{"name":"b","score":2}]`)
	rows, cols, err := ImportJSON(path, "Sheet1", doc, "A1", false)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if rows != 3 || cols != 2 {
		t.Errorf("Dimensions = %dx%d, expected 3x2", rows, cols)
	}

	if got := sheetCellValue(t, path, "Sheet1", "A1"); got != "name" {
		t.Errorf("A1 = %q, expected header name", got)
	}
	if got := sheetCellValue(t, path, "Sheet1", "B3"); got != "2" {
		t.Errorf("B3 = %q, expected 2", got)
	}
}

func TestImportJSONArrayOfArrays(t *testing.T) {
	path := newTestWorkbook(t, nil)

	doc := json.RawMessage(`[["h1","h2"],[1,2]]`)
	rows, cols, err := ImportJSON(path, "Sheet1", doc, "B2", false)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if rows != 2 || cols != 2 {
		t.Errorf("Dimensions = %dx%d, expected 2x2", rows, cols)
	}
	if got := sheetCellValue(t, path, "Sheet1", "C3"); got != "2" {
		t.Errorf("C3 = %q, expected 2", got)
	}
}

func TestImportJSONScalarsAndObject(t *testing.T) {
	path := newTestWorkbook(t, nil)

	rows, cols, err := ImportJSON(path, "Sheet1", json.RawMessage(`["a","b","c"]`), "A1", false)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if rows != 3 || cols != 1 {
		t.Errorf("Dimensions = %dx%d, expected 3x1", rows, cols)
	}

	rows, cols, err = ImportJSON(path, "Sheet1", json.RawMessage(`{"k1":"v1","k2":"v2"}`), "D1", false)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if rows != 2 || cols != 2 {
		t.Errorf("Dimensions = %dx%d, expected 2x2", rows, cols)
	}
	if got := sheetCellValue(t, path, "Sheet1", "D1"); got != "k1" {
		t.Errorf("D1 = %q, expected k1", got)
	}
}

func TestImportJSONCreateSheet(t *testing.T) {
	path := newTestWorkbook(t, nil)

	doc := json.RawMessage(`[["x"]]`)
	if _, _, err := ImportJSON(path, "Imported", doc, "A1", true); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if got := sheetCellValue(t, path, "Imported", "A1"); got != "x" {
		t.Errorf("Imported!A1 = %q, expected x", got)
	}

	// Without the create flag a missing sheet is an error.
	if _, _, err := ImportJSON(path, "Absent", doc, "A1", false); err == nil {
		t.Error("Expected error for missing sheet without create flag")
	}
}

func TestImportJSONInvalid(t *testing.T) {
	path := newTestWorkbook(t, nil)

	for _, doc := range []string{`"scalar"`, `not json`, `[]`} {
		if _, _, err := ImportJSON(path, "Sheet1", json.RawMessage(doc), "A1", false); err == nil {
			t.Errorf("Expected error for document %q", doc)
		}
	}
}
