package tools

import (
	"context"
	"encoding/json"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) analyzeTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name: "create_chart",
			Description: "Creates a chart from a data range. The first column supplies category " +
				"labels and the first row supplies series names.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"data_range": {"type": "string", "description": "Range containing chart data, e.g. \"A1:B10\""},
					"chart_type": {"type": "string", "enum": ["column", "bar", "line", "pie", "area", "scatter", "doughnut", "radar"]},
					"target_cell": {"type": "string", "description": "Cell anchoring the chart's top-left corner, e.g. \"D5\""},
					"title": {"type": "string", "description": "Chart title"},
					"x_axis": {"type": "string", "description": "X-axis title"},
					"y_axis": {"type": "string", "description": "Y-axis title"},
					"style": {
						"type": "object",
						"properties": {
							"has_legend": {"type": "boolean"},
							"legend_position": {"type": "string", "enum": ["right", "left", "top", "bottom"]},
							"has_data_labels": {"type": "boolean"},
							"width": {"type": "integer", "description": "Chart width in pixels, default 480"},
							"height": {"type": "integer", "description": "Chart height in pixels, default 300"}
						}
					}
				},
				"required": ["filepath", "sheet_name", "data_range", "chart_type", "target_cell"]
			}`),
			Handler: c.createChart,
		},
		{
			Name:        "create_pivot_table",
			Description: "Creates a pivot table summarizing a data range.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the source worksheet"},
					"pivot_name": {"type": "string", "description": "Name for the pivot table"},
					"data_range": {"type": "string", "description": "Range containing source data, e.g. \"A1:D10\""},
					"locate_range": {"type": "string", "description": "Range where the pivot table is placed"},
					"rows": {"type": "array", "items": {"type": "string"}, "description": "Field names used as row labels"},
					"values": {"type": "object", "additionalProperties": {"type": "string"}, "description": "Aggregated field names mapped to display names"},
					"columns": {"type": "array", "items": {"type": "string"}, "description": "Field names used as column labels"},
					"agg_func": {"type": "string", "enum": ["sum", "average", "count", "max", "min", "product", "stdev", "var"], "description": "Aggregation function, default \"sum\""}
				},
				"required": ["filepath", "sheet_name", "pivot_name", "data_range", "locate_range", "rows", "values"]
			}`),
			Handler: c.createPivotTable,
		},
		{
			Name:        "apply_autofilter",
			Description: "Applies an autofilter to a range and optionally sets per-column filter criteria.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Range to filter, e.g. \"A1:D10\""},
					"filter_criteria": {
						"type": "object",
						"description": "Filter settings keyed by 0-based column offset within the range",
						"additionalProperties": {
							"type": "object",
							"properties": {
								"type": {"type": "string", "enum": ["value", "custom"]},
								"values": {"type": "array", "description": "Accepted values for type \"value\""},
								"operator": {"type": "string", "enum": ["<", ">", "=", ">=", "<=", "<>"], "description": "Comparison for type \"custom\""},
								"criteria": {"description": "Comparison value for type \"custom\""}
							}
						}
					}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.applyAutofilter,
		},
		{
			Name:        "validate_excel_range",
			Description: "Validates a cell range against a worksheet and reports the sheet's actual data extent.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Range to validate, e.g. \"A1:D10\""}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.validateExcelRange,
		},
		{
			Name:        "list_shapes",
			Description: "Lists the drawing objects (shapes and pictures) anchored on a worksheet.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"}
				},
				"required": ["filepath", "sheet_name"]
			}`),
			Handler: c.listShapes,
		},
		{
			Name:        "get_shape_image_base64",
			Description: "Returns the image of a picture shape as a base64 string, selected by name or 0-based index.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet containing the shape"},
					"shape_name": {"type": "string", "description": "Name of the shape to export"},
					"shape_index": {"type": "integer", "description": "Index of the shape in the worksheet (0-based)"}
				},
				"required": ["filepath", "sheet_name"]
			}`),
			Handler: c.getShapeImageBase64,
		},
	}
}

func (c *Catalog) createChart(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath   string            `json:"filepath"`
		SheetName  string            `json:"sheet_name"`
		DataRange  string            `json:"data_range"`
		ChartType  string            `json:"chart_type"`
		TargetCell string            `json:"target_cell"`
		Title      string            `json:"title"`
		XAxis      string            `json:"x_axis"`
		YAxis      string            `json:"y_axis"`
		Style      *excel.ChartStyle `json:"style"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	err := excel.CreateChart(c.resolvePath(params.Filepath), params.SheetName, params.DataRange,
		params.ChartType, params.TargetCell, params.Title, params.XAxis, params.YAxis, params.Style)
	if err != nil {
		return "", err
	}
	return "Chart created successfully", nil
}

func (c *Catalog) createPivotTable(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath    string            `json:"filepath"`
		SheetName   string            `json:"sheet_name"`
		PivotName   string            `json:"pivot_name"`
		DataRange   string            `json:"data_range"`
		LocateRange string            `json:"locate_range"`
		Rows        []string          `json:"rows"`
		Values      map[string]string `json:"values"`
		Columns     []string          `json:"columns"`
		AggFunc     string            `json:"agg_func"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	err := excel.CreatePivotTable(c.resolvePath(params.Filepath), params.SheetName, params.PivotName,
		params.DataRange, params.LocateRange, params.Rows, params.Values, params.Columns, params.AggFunc)
	if err != nil {
		return "", err
	}
	return "Pivot table created successfully", nil
}

func (c *Catalog) applyAutofilter(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath       string                          `json:"filepath"`
		SheetName      string                          `json:"sheet_name"`
		CellRange      string                          `json:"cell_range"`
		FilterCriteria map[string]excel.FilterCriteria `json:"filter_criteria"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	err := excel.ApplyAutoFilter(c.resolvePath(params.Filepath), params.SheetName,
		params.CellRange, params.FilterCriteria)
	if err != nil {
		return "", err
	}
	return "Autofilter applied successfully", nil
}

func (c *Catalog) validateExcelRange(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
		CellRange string `json:"cell_range"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	result, err := excel.ValidateRange(c.resolvePath(params.Filepath), params.SheetName, params.CellRange)
	if err != nil {
		return "", err
	}
	return jsonResult(result)
}

func (c *Catalog) listShapes(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	shapes, err := excel.ListShapes(c.resolvePath(params.Filepath), params.SheetName)
	if err != nil {
		return "", err
	}
	if len(shapes) == 0 {
		return "No shapes found in worksheet", nil
	}
	return jsonResult(shapes)
}

func (c *Catalog) getShapeImageBase64(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath   string `json:"filepath"`
		SheetName  string `json:"sheet_name"`
		ShapeName  string `json:"shape_name"`
		ShapeIndex *int   `json:"shape_index"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	img, err := excel.GetShapeImage(c.resolvePath(params.Filepath), params.SheetName,
		params.ShapeName, params.ShapeIndex)
	if err != nil {
		return "", err
	}
	return img.Data, nil
}
