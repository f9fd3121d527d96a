package excel

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExportJSONOptions controls how a range is rendered as JSON.
type ExportJSONOptions struct {
	// Headers treats the first row as the object keys. Blank header cells
	// fall back to "Column{n}" names.
	Headers bool `json:"headers,omitempty"`
	// ArrayFormat emits an array of row arrays instead of objects.
	ArrayFormat bool `json:"array_format,omitempty"`
	PrettyPrint bool `json:"pretty_print,omitempty"`
}

// ExportJSON renders a cell range as a JSON document. With headers enabled
// the first row names the fields of each row object; with array format the
// result is a plain 2-D array of cell values.
func ExportJSON(path, sheet, cellRange string, opts ExportJSONOptions) (string, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return "", opErr("export json", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return "", opErr("export json", path, err)
	}

	var bounds RangeBounds
	if cellRange == "" {
		used, err := usedRange(f, sheet)
		if err != nil {
			return "", opErr("export json", path, err)
		}
		if used == "" {
			return "[]", nil
		}
		cellRange = used
	}
	bounds, err = ParseRange(cellRange)
	if err != nil {
		return "", opErr("export json", path, err)
	}

	rows, err := rangeValues(f, sheet, bounds)
	if err != nil {
		return "", opErr("export json", path, err)
	}

	var doc any
	switch {
	case opts.ArrayFormat:
		doc = rows
	case opts.Headers && len(rows) > 0:
		doc = rowObjects(rows[0], rows[1:])
	default:
		headers := make([]string, bounds.Cols())
		doc = rowObjects(headers, rows)
	}

	var out []byte
	if opts.PrettyPrint {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return "", opErr("export json", path, err)
	}
	return string(out), nil
}

// ImportJSON writes a JSON document into a sheet starting at startCell and
// returns the written dimensions. Accepted shapes: array of objects (keys
// become a header row), array of arrays, array of scalars (one column), or
// a single object (key/value rows).
func ImportJSON(path, sheet string, data json.RawMessage, startCell string, createSheet bool) (rows, cols int, err error) {
	matrix, err := jsonMatrix(data)
	if err != nil {
		return 0, 0, opErr("import json", path, err)
	}
	if len(matrix) == 0 {
		return 0, 0, opErr("import json", path, fmt.Errorf("json document contains no data"))
	}

	f, err := openOrCreateWorkbook(path)
	if err != nil {
		return 0, 0, opErr("import json", path, err)
	}
	defer f.Close()

	if createSheet {
		if err := ensureSheet(f, sheet); err != nil {
			return 0, 0, opErr("import json", path, err)
		}
	} else if err := requireSheet(f, sheet); err != nil {
		return 0, 0, opErr("import json", path, err)
	}

	if startCell == "" {
		startCell = "A1"
	}
	start, err := ParseRange(startCell)
	if err != nil {
		return 0, 0, opErr("import json", path, err)
	}

	for i, row := range matrix {
		for j, value := range row {
			name, err := excelize.CoordinatesToCellName(start.StartCol+j, start.StartRow+i)
			if err != nil {
				return 0, 0, opErr("import json", path, err)
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return 0, 0, opErr("import json", path, err)
			}
		}
		if len(row) > cols {
			cols = len(row)
		}
	}

	if err := saveWorkbook(f, path); err != nil {
		return 0, 0, opErr("import json", path, err)
	}
	return len(matrix), cols, nil
}

// rangeValues reads a range as a row-major matrix of display values.
func rangeValues(f *excelize.File, sheet string, b RangeBounds) ([][]string, error) {
	rows := make([][]string, 0, b.Rows())
	for r := b.StartRow; r <= b.EndRow; r++ {
		row := make([]string, 0, b.Cols())
		for c := b.StartCol; c <= b.EndCol; c++ {
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			value, err := f.GetCellValue(sheet, name)
			if err != nil {
				return nil, err
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowObjects pairs each data row with the header names, synthesizing
// "Column{n}" for blank headers.
func rowObjects(headers []string, rows [][]string) []map[string]string {
	names := make([]string, len(headers))
	for i, h := range headers {
		if h == "" {
			names[i] = fmt.Sprintf("Column%d", i+1)
		} else {
			names[i] = h
		}
	}

	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(names))
		for i, name := range names {
			if i < len(row) {
				obj[name] = row[i]
			} else {
				obj[name] = ""
			}
		}
		out = append(out, obj)
	}
	return out
}

// jsonMatrix normalizes the accepted JSON shapes into a row-major matrix.
func jsonMatrix(data json.RawMessage) ([][]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid json document: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return jsonArrayMatrix(v)
	case map[string]any:
		// Single object: one key/value row per field.
		keys := sortedKeys(v)
		matrix := make([][]any, 0, len(keys))
		for _, k := range keys {
			matrix = append(matrix, []any{k, v[k]})
		}
		return matrix, nil
	default:
		return nil, fmt.Errorf("json document must be an object or array")
	}
}

func jsonArrayMatrix(items []any) ([][]any, error) {
	if len(items) == 0 {
		return nil, nil
	}

	switch items[0].(type) {
	case map[string]any:
		// Array of objects: union of keys in first-seen order is the header.
		var header []string
		seen := make(map[string]bool)
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("mixed json array element types")
			}
			for _, k := range sortedKeys(obj) {
				if !seen[k] {
					seen[k] = true
					header = append(header, k)
				}
			}
		}

		matrix := make([][]any, 0, len(items)+1)
		headerRow := make([]any, len(header))
		for i, k := range header {
			headerRow[i] = k
		}
		matrix = append(matrix, headerRow)

		for _, item := range items {
			obj := item.(map[string]any)
			row := make([]any, len(header))
			for i, k := range header {
				row[i] = obj[k]
			}
			matrix = append(matrix, row)
		}
		return matrix, nil
	case []any:
		matrix := make([][]any, 0, len(items))
		for _, item := range items {
			row, ok := item.([]any)
			if !ok {
				return nil, fmt.Errorf("mixed json array element types")
			}
			matrix = append(matrix, row)
		}
		return matrix, nil
	default:
		// Array of scalars: one column.
		matrix := make([][]any, 0, len(items))
		for _, item := range items {
			matrix = append(matrix, []any{item})
		}
		return matrix, nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
