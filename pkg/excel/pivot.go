package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

var aggregateFuncs = map[string]string{
	"sum":     "Sum",
	"average": "Average",
	"count":   "Count",
	"max":     "Max",
	"min":     "Min",
	"product": "Product",
	"stdev":   "StdDev",
	"var":     "Var",
}

// CreatePivotTable builds a pivot table over dataRange, placed at
// locateRange. Field names in rows, columns, and values must match the
// header row of the data range; values maps each aggregated field to its
// display name.
func CreatePivotTable(path, sheet, pivotName, dataRange, locateRange string, rows []string, values map[string]string, columns []string, aggFunc string) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("create pivot table", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("create pivot table", path, err)
	}

	subtotal, ok := aggregateFuncs[strings.ToLower(aggFunc)]
	if !ok {
		if aggFunc == "" {
			subtotal = "Sum"
		} else {
			return opErr("create pivot table", path,
				fmt.Errorf("%w: %q", ErrUnsupportedAggregate, aggFunc))
		}
	}

	data, err := ParseRange(dataRange)
	if err != nil {
		return opErr("create pivot table", path, err)
	}
	locate, err := ParseRange(locateRange)
	if err != nil {
		return opErr("create pivot table", path, err)
	}

	opts := &excelize.PivotTableOptions{
		Name:            pivotName,
		DataRange:       absRangeRef(sheet, data.StartCol, data.StartRow, data.EndCol, data.EndRow),
		PivotTableRange: absRangeRef(sheet, locate.StartCol, locate.StartRow, locate.EndCol, locate.EndRow),
		RowGrandTotals:  true,
		ColGrandTotals:  true,
		ShowRowHeaders:  true,
		ShowColHeaders:  true,
	}

	for _, field := range rows {
		opts.Rows = append(opts.Rows, excelize.PivotTableField{Data: field})
	}
	for _, field := range columns {
		opts.Columns = append(opts.Columns, excelize.PivotTableField{Data: field})
	}
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		pf := excelize.PivotTableField{Data: field, Subtotal: subtotal}
		if name := values[field]; name != "" && name != field {
			pf.Name = name
		}
		opts.Data = append(opts.Data, pf)
	}
	if len(opts.Data) == 0 {
		return opErr("create pivot table", path, fmt.Errorf("pivot table requires at least one value field"))
	}

	if err := f.AddPivotTable(opts); err != nil {
		return opErr("create pivot table", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("create pivot table", path, err)
	}
	return nil
}
