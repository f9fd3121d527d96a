package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FilterCriteria describes the filter rules for one column of an autofilter
// range. Keys of the criteria map passed to ApplyAutoFilter are 0-based
// column offsets within the range.
type FilterCriteria struct {
	Type     string `json:"type"`               // "value" or "custom"
	Values   []any  `json:"values,omitempty"`   // for "value"
	Operator string `json:"operator,omitempty"` // for "custom": < > = >= <= <>
	Criteria any    `json:"criteria,omitempty"` // for "custom"
	// top10 parameters are accepted for catalog compatibility but the
	// engine cannot evaluate them; see ApplyAutoFilter.
	Percent bool `json:"percent,omitempty"`
	Count   int  `json:"count,omitempty"`
	Bottom  bool `json:"bottom,omitempty"`
}

var filterOperators = map[string]string{
	"=":  "==",
	">":  ">",
	"<":  "<",
	">=": ">=",
	"<=": "<=",
	"<>": "!=",
}

// ApplyAutoFilter applies an autofilter to a range and optionally sets
// per-column filter criteria, translated into the engine's expression
// grammar. The engine has no top10 filter; such criteria are rejected.
func ApplyAutoFilter(path, sheet, cellRange string, criteria map[string]FilterCriteria) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("apply autofilter", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("apply autofilter", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return opErr("apply autofilter", path, err)
	}

	opts, err := filterOptions(bounds, criteria)
	if err != nil {
		return opErr("apply autofilter", path, err)
	}

	if err := f.AutoFilter(sheet, bounds.Ref(), opts); err != nil {
		return opErr("apply autofilter", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("apply autofilter", path, err)
	}
	return nil
}

// filterOptions translates the criteria map into engine filter options.
// Criteria are emitted in column order so the output is deterministic.
func filterOptions(bounds RangeBounds, criteria map[string]FilterCriteria) ([]excelize.AutoFilterOptions, error) {
	if len(criteria) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(criteria))
	for k := range criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var opts []excelize.AutoFilterOptions
	for _, key := range keys {
		offset, err := strconv.Atoi(key)
		if err != nil || offset < 0 || bounds.StartCol+offset > bounds.EndCol {
			return nil, fmt.Errorf("invalid filter column index %q", key)
		}

		expr, err := filterExpression(criteria[key])
		if err != nil {
			return nil, err
		}

		opts = append(opts, excelize.AutoFilterOptions{
			Column:     ColumnLetter(bounds.StartCol + offset),
			Expression: expr,
		})
	}
	return opts, nil
}

func filterExpression(c FilterCriteria) (string, error) {
	switch strings.ToLower(c.Type) {
	case "value":
		if len(c.Values) == 0 {
			return "", fmt.Errorf("value filter requires a non-empty values list")
		}
		terms := make([]string, len(c.Values))
		for i, v := range c.Values {
			terms[i] = "x == " + filterOperand(v)
		}
		return strings.Join(terms, " or "), nil
	case "custom":
		op, ok := filterOperators[c.Operator]
		if !ok {
			return "", fmt.Errorf("invalid filter operator %q", c.Operator)
		}
		if c.Criteria == nil {
			return "", fmt.Errorf("custom filter requires a criteria value")
		}
		return fmt.Sprintf("x %s %s", op, filterOperand(c.Criteria)), nil
	case "top10":
		return "", fmt.Errorf("top10 filters are not supported by the engine")
	default:
		return "", fmt.Errorf("invalid filter type %q", c.Type)
	}
}

// filterOperand renders a criteria value for the filter expression grammar,
// keeping numbers bare and wrapping everything else.
func filterOperand(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case string:
		if _, err := strconv.ParseFloat(n, 64); err == nil {
			return n
		}
		return n
	default:
		return fmt.Sprint(v)
	}
}
