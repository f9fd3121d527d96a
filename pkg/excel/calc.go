package excel

import (
	"fmt"
	"strings"
)

// FormulaResult reports the outcome of applying a formula to a cell.
type FormulaResult struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
	Result  string `json:"result"`
}

// ApplyFormula writes a formula into a cell, lets the engine evaluate it,
// and saves the workbook. The returned result is the engine-computed value.
func ApplyFormula(path, sheet, cell, formula string) (*FormulaResult, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, opErr("apply formula", path, fmt.Errorf("formula cannot be empty"))
	}

	f, err := openWorkbook(path)
	if err != nil {
		return nil, opErr("apply formula", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return nil, opErr("apply formula", path, err)
	}
	if _, err := ParseRange(cell); err != nil {
		return nil, opErr("apply formula", path, err)
	}

	// The engine stores formulas without the leading "=".
	if err := f.SetCellFormula(sheet, cell, strings.TrimPrefix(formula, "=")); err != nil {
		return nil, opErr("apply formula", path, err)
	}

	result, err := f.CalcCellValue(sheet, cell)
	if err != nil {
		return nil, opErr("apply formula", path, err)
	}

	if err := f.Save(); err != nil {
		return nil, opErr("apply formula", path, err)
	}

	return &FormulaResult{Cell: cell, Formula: formula, Result: result}, nil
}
