package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// RangeValidation reports how a requested range relates to the data actually
// present on the sheet.
type RangeValidation struct {
	Valid             bool           `json:"valid"`
	Range             string         `json:"range"`
	DataRange         string         `json:"data_range"`
	ExtendsBeyondData bool           `json:"extends_beyond_data"`
	DataDimensions    RangeDimension `json:"data_dimensions"`
}

// RangeDimension is a row/column extent.
type RangeDimension struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// FormulaValidation is the outcome of a formula syntax check.
type FormulaValidation struct {
	Valid   bool   `json:"valid"`
	Formula string `json:"formula"`
	Reason  string `json:"reason,omitempty"`
}

// ValidateRange checks that a range reference parses and fits the sheet,
// and reports whether it reaches past the sheet's used data region.
func ValidateRange(path, sheet, cellRange string) (*RangeValidation, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, opErr("validate range", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return nil, opErr("validate range", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return nil, opErr("validate range", path, err)
	}

	lastRow, lastCol, err := dataBounds(f, sheet)
	if err != nil {
		return nil, opErr("validate range", path, err)
	}

	v := &RangeValidation{
		Valid: true,
		Range: bounds.Ref(),
		DataDimensions: RangeDimension{
			Rows:    lastRow,
			Columns: lastCol,
		},
		ExtendsBeyondData: bounds.EndRow > lastRow || bounds.EndCol > lastCol,
	}
	if lastRow > 0 && lastCol > 0 {
		v.DataRange = fmt.Sprintf("A1:%s%d", ColumnLetter(lastCol), lastRow)
	}
	return v, nil
}

// ValidateFormula checks a formula for syntax errors without touching any
// workbook: tokenization plus balanced parentheses and quotes.
func ValidateFormula(formula string) *FormulaValidation {
	v := &FormulaValidation{Formula: formula}

	trimmed := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if trimmed == "" {
		v.Reason = "formula is empty"
		return v
	}

	if reason := checkBalanced(trimmed); reason != "" {
		v.Reason = reason
		return v
	}

	parser := efp.ExcelParser()
	tokens := parser.Parse(trimmed)
	if len(tokens) == 0 {
		v.Reason = "formula could not be tokenized"
		return v
	}
	for _, token := range tokens {
		if token.TType == efp.TokenTypeUnknown {
			v.Reason = fmt.Sprintf("unrecognized token %q", token.TValue)
			return v
		}
	}

	v.Valid = true
	return v
}

// checkBalanced verifies parentheses and string quotes pair up, ignoring
// parentheses inside quoted strings.
func checkBalanced(formula string) string {
	depth := 0
	inString := false
	for _, r := range formula {
		switch r {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
				if depth < 0 {
					return "unmatched closing parenthesis"
				}
			}
		}
	}
	if inString {
		return "unterminated string literal"
	}
	if depth != 0 {
		return "unbalanced parentheses"
	}
	return ""
}
