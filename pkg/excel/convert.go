package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ConvertOptions tunes workbook export. Sheet selects the worksheet for
// text formats (the active sheet when empty); Range restricts csv and txt
// output to a sub-range; Delimiter overrides the field separator.
type ConvertOptions struct {
	Sheet     string `json:"sheet_name,omitempty"`
	Range     string `json:"cell_range,omitempty"`
	Delimiter string `json:"delimiter,omitempty"`
}

// workbookFormats are the target formats the engine can write natively.
var workbookFormats = map[string]bool{
	"xlsx": true,
	"xlsm": true,
	"xltx": true,
	"xltm": true,
}

// ConvertWorkbook exports a workbook to the requested format. Spreadsheet
// formats are re-saved by the engine; csv and txt flatten one worksheet to
// delimited text. Formats the engine cannot render (pdf, html, images, xml,
// legacy xls) are rejected before any output is written.
func ConvertWorkbook(path, outputPath, formatType string, opts ConvertOptions) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("convert workbook", path, err)
	}
	defer f.Close()

	format := strings.ToLower(strings.TrimSpace(formatType))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
	}

	switch {
	case workbookFormats[format]:
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return opErr("convert workbook", path, err)
		}
		if err := f.SaveAs(ensureExt(outputPath, format)); err != nil {
			return opErr("convert workbook", path, err)
		}
	case format == "csv" || format == "txt":
		if err := exportDelimited(f, outputPath, format, opts); err != nil {
			return opErr("convert workbook", path, err)
		}
	default:
		return opErr("convert workbook", path,
			fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
	}
	return nil
}

// ensureExt appends the format extension when the output path lacks one,
// since the engine derives the archive flavor from the file name.
func ensureExt(outputPath, format string) string {
	if strings.EqualFold(filepath.Ext(outputPath), "."+format) {
		return outputPath
	}
	return outputPath + "." + format
}

// exportDelimited writes one worksheet as delimited text. csv output uses a
// comma and txt a tab unless a delimiter override is given.
func exportDelimited(f *excelize.File, outputPath, format string, opts ConvertOptions) error {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else if idx, err := f.GetSheetIndex(sheet); err != nil {
		return err
	} else if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	delimiter := ','
	if format == "txt" {
		delimiter = '\t'
	}
	if opts.Delimiter != "" {
		runes := []rune(opts.Delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", opts.Delimiter)
		}
		delimiter = runes[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if opts.Range != "" {
		if rows, err = sliceRows(rows, opts.Range); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.Comma = delimiter
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return out.Close()
}

// sliceRows cuts the row matrix down to a cell range, padding short rows so
// every output row has the range's column count.
func sliceRows(rows [][]string, cellRange string) ([][]string, error) {
	bounds, err := ParseRange(cellRange)
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, bounds.Rows())
	for r := bounds.StartRow; r <= bounds.EndRow; r++ {
		row := make([]string, bounds.Cols())
		if r <= len(rows) {
			src := rows[r-1]
			for c := bounds.StartCol; c <= bounds.EndCol && c <= len(src); c++ {
				row[c-bounds.StartCol] = src[c-1]
			}
		}
		out = append(out, row)
	}
	return out, nil
}
