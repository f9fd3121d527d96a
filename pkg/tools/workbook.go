package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) workbookTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name:        "create_workbook",
			Description: "Creates a new Excel workbook with a single worksheet.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path where the new workbook will be saved"},
					"sheet_name": {"type": "string", "description": "Name for the initial worksheet; engine default when omitted"}
				},
				"required": ["filepath"]
			}`),
			Handler: c.createWorkbook,
		},
		{
			Name:        "create_worksheet",
			Description: "Creates a new worksheet in an existing workbook.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name for the new worksheet"}
				},
				"required": ["filepath", "sheet_name"]
			}`),
			Handler: c.createWorksheet,
		},
		{
			Name:        "get_workbook_metadata",
			Description: "Gets metadata about a workbook: sheets, size, modification time, and optionally used data ranges.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"include_ranges": {"type": "boolean", "description": "Include the used data range of each sheet"}
				},
				"required": ["filepath"]
			}`),
			Handler: c.getWorkbookMetadata,
		},
	}
}

func (c *Catalog) createWorkbook(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	path := c.resolvePath(params.Filepath)
	if err := excel.CreateWorkbook(path, params.SheetName); err != nil {
		return "", err
	}

	c.logger.Info("workbook created", zap.String("path", path))
	return fmt.Sprintf("Created workbook at %s", path), nil
}

func (c *Catalog) createWorksheet(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheet_name"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	if err := excel.CreateSheet(c.resolvePath(params.Filepath), params.SheetName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sheet %q created successfully", params.SheetName), nil
}

func (c *Catalog) getWorkbookMetadata(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath      string `json:"filepath"`
		IncludeRanges bool   `json:"include_ranges"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	meta, err := excel.GetWorkbookMetadata(c.resolvePath(params.Filepath), params.IncludeRanges)
	if err != nil {
		return "", err
	}
	return jsonResult(meta)
}
