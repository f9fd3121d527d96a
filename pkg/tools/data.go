package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) dataTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name: "read_data_from_excel",
			Description: "Reads data from a worksheet range. Returns a column-first JSON object " +
				"where cells are addressed as data[column_letter][row_number], each with value, " +
				"formula, style, and merge information.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet to read from"},
					"cell_range": {"type": "string", "description": "Range of cells to read, e.g. \"A1:D10\""},
					"preview_only": {"type": "boolean", "description": "Return only a 5x5 preview without full styling info"}
				},
				"required": ["filepath", "sheet_name", "cell_range"]
			}`),
			Handler: c.readData,
		},
		{
			Name:        "write_data_to_excel",
			Description: "Writes a matrix of values to a worksheet, creating the file or sheet when missing.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet to write to"},
					"data": {"type": "array", "items": {"type": "array"}, "description": "Rows of data to write"},
					"start_cell": {"type": "string", "description": "Cell to start writing from, default \"A1\""}
				},
				"required": ["filepath", "sheet_name", "data"]
			}`),
			Handler: c.writeData,
		},
	}
}

func (c *Catalog) readData(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath    string `json:"filepath"`
		SheetName   string `json:"sheet_name"`
		CellRange   string `json:"cell_range"`
		PreviewOnly bool   `json:"preview_only"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	data, err := excel.ReadRange(c.resolvePath(params.Filepath), params.SheetName, params.CellRange, params.PreviewOnly)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "No data found in specified range", nil
	}
	return jsonResult(data)
}

func (c *Catalog) writeData(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath  string  `json:"filepath"`
		SheetName string  `json:"sheet_name"`
		Data      [][]any `json:"data"`
		StartCell string  `json:"start_cell"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}
	if params.StartCell == "" {
		params.StartCell = "A1"
	}
	if len(params.Data) == 0 {
		return "", fmt.Errorf("data must be a non-empty list of rows")
	}

	if err := excel.WriteData(c.resolvePath(params.Filepath), params.SheetName, params.Data, params.StartCell); err != nil {
		return "", err
	}
	return fmt.Sprintf("Data written to %q starting at %s", params.SheetName, params.StartCell), nil
}
