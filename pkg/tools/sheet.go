package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) sheetTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name:        "copy_worksheet",
			Description: "Copies a worksheet within the same workbook.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"source_sheet": {"type": "string", "description": "Name of the worksheet to copy"},
					"target_sheet": {"type": "string", "description": "Name for the new worksheet copy"}
				},
				"required": ["filepath", "source_sheet", "target_sheet"]
			}`),
			Handler: c.copyWorksheet,
		},
		{
			Name:        "delete_worksheet",
			Description: "Deletes a worksheet from a workbook. The last remaining sheet cannot be deleted.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet to delete"}
				},
				"required": ["filepath", "sheet_name"]
			}`),
			Handler: c.deleteWorksheet,
		},
		{
			Name:        "rename_worksheet",
			Description: "Renames a worksheet in a workbook.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"old_name": {"type": "string", "description": "Current name of the worksheet"},
					"new_name": {"type": "string", "description": "New name to assign"}
				},
				"required": ["filepath", "old_name", "new_name"]
			}`),
			Handler: c.renameWorksheet,
		},
		{
			Name:        "merge_cells",
			Description: "Merges one or more cell ranges in a worksheet.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range_list": {"type": "array", "items": {"type": "string"}, "description": "Cell ranges to merge, e.g. [\"A1:C1\", \"A2:B2\"]"}
				},
				"required": ["filepath", "sheet_name", "cell_range_list"]
			}`),
			Handler: c.mergeCells,
		},
		{
			Name:        "unmerge_cells",
			Description: "Splits a previously merged cell range back into independent cells.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Merged range to split, e.g. \"A1:C1\""}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.unmergeCells,
		},
		{
			Name:        "copy_range",
			Description: "Copies a range of cells (values, formulas, styles) to another location, optionally in a different sheet.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the source worksheet"},
					"source_range": {"type": "string", "description": "Range of cells to copy, e.g. \"A1:C5\""},
					"target_range": {"type": "string", "description": "Target position for the copy"},
					"target_sheet": {"type": "string", "description": "Target worksheet if different from source"}
				},
				"required": ["filepath", "sheet_name", "source_range", "target_range"]
			}`),
			Handler: c.copyRange,
		},
		{
			Name:        "delete_range",
			Description: "Deletes a range of cells and shifts the remaining cells up or left.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Range of cells to delete, e.g. \"A1:C5\""},
					"shift_direction": {"type": "string", "enum": ["up", "left"], "description": "Direction to shift remaining cells, default \"up\""}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.deleteRange,
		},
	}
}

func (c *Catalog) copyWorksheet(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath    string `json:"filepath"`
		SourceSheet string `json:"source_sheet"`
		TargetSheet string `json:"target_sheet"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	if err := excel.CopySheet(c.resolvePath(params.Filepath), params.SourceSheet, params.TargetSheet); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet %q copied to %q", params.SourceSheet, params.TargetSheet), nil
}

func (c *Catalog) deleteWorksheet(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	if err := excel.DeleteSheet(c.resolvePath(params.Filepath), params.SheetName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet %q deleted successfully", params.SheetName), nil
}

func (c *Catalog) renameWorksheet(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath string `json:"filepath"`
		OldName  string `json:"old_name"`
		NewName  string `json:"new_name"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	if err := excel.RenameSheet(c.resolvePath(params.Filepath), params.OldName, params.NewName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet %q renamed to %q", params.OldName, params.NewName), nil
}

func (c *Catalog) mergeCells(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath      string   `json:"filepath"`
		SheetName     string   `json:"sheet_name"`
		CellRangeList []string `json:"cell_range_list"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}
	if len(params.CellRangeList) == 0 {
		return "", fmt.Errorf("cell_range_list must be a non-empty list of ranges")
	}

	if err := excel.MergeCells(c.resolvePath(params.Filepath), params.SheetName, params.CellRangeList); err != nil {
		return "", err
	}
	return fmt.Sprintf("Merged %d range(s) successfully", len(params.CellRangeList)), nil
}

func (c *Catalog) unmergeCells(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
		CellRange string `json:"cell_range"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	if err := excel.UnmergeCells(c.resolvePath(params.Filepath), params.SheetName, params.CellRange); err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s unmerged successfully", params.CellRange), nil
}

func (c *Catalog) copyRange(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath    string `json:"filepath"`
		SheetName   string `json:"sheet_name"`
		SourceRange string `json:"source_range"`
		TargetRange string `json:"target_range"`
		TargetSheet string `json:"target_sheet"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	err := excel.CopyRange(c.resolvePath(params.Filepath), params.SheetName,
		params.SourceRange, params.TargetRange, params.TargetSheet)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s copied to %s", params.SourceRange, params.TargetRange), nil
}

func (c *Catalog) deleteRange(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath       string `json:"filepath"`
		SheetName      string `json:"sheet_name"`
		CellRange      string `json:"cell_range"`
		ShiftDirection string `json:"shift_direction"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}
	if params.ShiftDirection == "" {
		params.ShiftDirection = "up"
	}

	err := excel.DeleteRange(c.resolvePath(params.Filepath), params.SheetName,
		params.CellRange, params.ShiftDirection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Range %s deleted, cells shifted %s", params.CellRange, params.ShiftDirection), nil
}
