package tools

import (
	"context"
	"encoding/json"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) formatTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name:        "apply_formula",
			Description: "Applies an Excel formula to a cell and returns the engine-evaluated result.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell": {"type": "string", "description": "Cell reference where the formula is applied, e.g. \"A1\""},
					"formula": {"type": "string", "description": "Excel formula to apply, e.g. \"=SUM(A1:A10)\""}
				},
				"required": ["filepath", "sheet_name", "cell", "formula"]
			}`),
			Handler: c.applyFormula,
		},
		{
			Name:        "validate_formula_syntax",
			Description: "Checks an Excel formula for syntax errors without modifying any workbook.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"formula": {"type": "string", "description": "Excel formula to validate"}
				},
				"required": ["formula"]
			}`),
			Handler: c.validateFormulaSyntax,
		},
		{
			Name: "format_range",
			Description: "Applies formatting to a range of cells: font, fill, borders, number format, " +
				"alignment, protection, merging, and conditional formatting rules.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Range of cells to format, e.g. \"A1:C5\""},
					"bold": {"type": "boolean"},
					"italic": {"type": "boolean"},
					"underline": {"type": "boolean"},
					"font_size": {"type": "number"},
					"font_color": {"type": "string", "description": "Font color as hex code, e.g. \"#FF0000\""},
					"bg_color": {"type": "string", "description": "Background color as hex code"},
					"border_style": {"type": "string", "enum": ["thin", "medium", "dashed", "dotted", "thick", "double"]},
					"border_color": {"type": "string", "description": "Border color as hex code"},
					"number_format": {"type": "string", "description": "Excel number format code"},
					"alignment": {"type": "string", "enum": ["left", "center", "right", "justify", "fill"]},
					"wrap_text": {"type": "boolean"},
					"merge_cells": {"type": "boolean", "description": "Merge the cells in the range"},
					"protection": {
						"type": "object",
						"properties": {
							"locked": {"type": "boolean"},
							"hidden": {"type": "boolean"}
						}
					},
					"conditional_format": {
						"type": "object",
						"properties": {
							"type": {"type": "string", "enum": ["cell", "duplicate", "unique", "average", "top10", "data_bar", "color_scale", "formula"]},
							"criteria": {"type": "string"},
							"value": {},
							"value2": {},
							"first_formula": {"type": "string"},
							"second_formula": {"type": "string"},
							"format": {
								"type": "object",
								"properties": {
									"font_color": {"type": "string"},
									"bg_color": {"type": "string"}
								}
							}
						}
					}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.formatRange,
		},
	}
}

func (c *Catalog) applyFormula(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
		Cell      string `json:"cell"`
		Formula   string `json:"formula"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	result, err := excel.ApplyFormula(c.resolvePath(params.Filepath), params.SheetName, params.Cell, params.Formula)
	if err != nil {
		return "", err
	}
	return jsonResult(result)
}

func (c *Catalog) validateFormulaSyntax(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Formula string `json:"formula"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}
	return jsonResult(excel.ValidateFormula(params.Formula))
}

func (c *Catalog) formatRange(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
		CellRange string `json:"cell_range"`
		excel.FormatOptions
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	err := excel.FormatRange(c.resolvePath(params.Filepath), params.SheetName, params.CellRange, params.FormatOptions)
	if err != nil {
		return "", err
	}
	return "Range formatted successfully", nil
}
