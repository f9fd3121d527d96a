package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"xlsmcp/pkg/excel"
	"xlsmcp/pkg/toolbox"
)

func (c *Catalog) convertTools() []toolbox.Tool {
	return []toolbox.Tool{
		{
			Name:        "export_to_json",
			Description: "Exports worksheet data to a JSON file, as objects keyed by the header row or as a plain 2-D array.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the worksheet"},
					"cell_range": {"type": "string", "description": "Range to export; the used data range when omitted"},
					"output_filepath": {"type": "string", "description": "Path to the output JSON file"},
					"include_headers": {"type": "boolean", "description": "Use the first row as object keys, default true"},
					"options": {
						"type": "object",
						"properties": {
							"pretty_print": {"type": "boolean", "description": "Indent the JSON output, default true"},
							"array_format": {"type": "boolean", "description": "Emit an array of row arrays instead of objects"}
						}
					}
				},
				"required": ["filepath", "sheet_name", "output_filepath"]
			}`),
			Handler: c.exportToJSON,
		},
		{
			Name: "import_from_json",
			Description: "Imports a JSON file into a worksheet. Accepts arrays of objects, arrays of " +
				"arrays, arrays of scalars, or a single object.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"json_filepath": {"type": "string", "description": "Path to the JSON file"},
					"excel_filepath": {"type": "string", "description": "Path to the Excel file"},
					"sheet_name": {"type": "string", "description": "Name of the target worksheet"},
					"start_cell": {"type": "string", "description": "Cell to start importing at, default \"A1\""},
					"create_sheet": {"type": "boolean", "description": "Create the sheet when it does not exist"}
				},
				"required": ["json_filepath", "excel_filepath", "sheet_name"]
			}`),
			Handler: c.importFromJSON,
		},
		{
			Name: "convert_excel",
			Description: "Converts a workbook to another format. Supported: xlsx, xlsm, xltx, xltm, " +
				"csv, txt. Unsupported targets are rejected with an error.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filepath": {"type": "string", "description": "Path to the Excel file"},
					"output_filepath": {"type": "string", "description": "Path for the output file"},
					"format_type": {"type": "string", "description": "Target format; inferred from the output extension when omitted"},
					"sheet_name": {"type": "string", "description": "Worksheet to export for csv/txt; the active sheet when omitted"},
					"cell_range": {"type": "string", "description": "Restrict csv/txt output to this range; the whole sheet when omitted"},
					"options": {
						"type": "object",
						"properties": {
							"delimiter": {"type": "string", "description": "Field delimiter for csv/txt output"}
						}
					}
				},
				"required": ["filepath", "output_filepath", "format_type"]
			}`),
			Handler: c.convertExcel,
		},
	}
}

func (c *Catalog) exportToJSON(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath       string `json:"filepath"`
		SheetName      string `json:"sheet_name"`
		CellRange      string `json:"cell_range"`
		OutputFilepath string `json:"output_filepath"`
		IncludeHeaders *bool  `json:"include_headers"`
		Options        struct {
			PrettyPrint *bool `json:"pretty_print"`
			ArrayFormat bool  `json:"array_format"`
		} `json:"options"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	opts := excel.ExportJSONOptions{
		Headers:     params.IncludeHeaders == nil || *params.IncludeHeaders,
		ArrayFormat: params.Options.ArrayFormat,
		PrettyPrint: params.Options.PrettyPrint == nil || *params.Options.PrettyPrint,
	}

	doc, err := excel.ExportJSON(c.resolvePath(params.Filepath), params.SheetName, params.CellRange, opts)
	if err != nil {
		return "", err
	}

	outputPath := c.resolvePath(params.OutputFilepath)
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("Data exported to %s", outputPath), nil
}

func (c *Catalog) importFromJSON(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		JSONFilepath  string `json:"json_filepath"`
		ExcelFilepath string `json:"excel_filepath"`
		SheetName     string `json:"sheet_name"`
		StartCell     string `json:"start_cell"`
		CreateSheet   bool   `json:"create_sheet"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	doc, err := os.ReadFile(c.resolvePath(params.JSONFilepath))
	if err != nil {
		return "", fmt.Errorf("read json file: %w", err)
	}

	excelPath := c.resolvePath(params.ExcelFilepath)
	rows, cols, err := excel.ImportJSON(excelPath, params.SheetName, doc, params.StartCell, params.CreateSheet)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Imported %d row(s) x %d column(s) into %s", rows, cols, excelPath), nil
}

func (c *Catalog) convertExcel(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Filepath       string `json:"filepath"`
		OutputFilepath string `json:"output_filepath"`
		FormatType     string `json:"format_type"`
		SheetName      string `json:"sheet_name"`
		CellRange      string `json:"cell_range"`
		Options        struct {
			Delimiter string `json:"delimiter"`
		} `json:"options"`
	}
	if err := decode(args, &params); err != nil {
		return "", err
	}

	outputPath := c.resolvePath(params.OutputFilepath)
	opts := excel.ConvertOptions{
		Sheet:     params.SheetName,
		Range:     params.CellRange,
		Delimiter: params.Options.Delimiter,
	}
	if err := excel.ConvertWorkbook(c.resolvePath(params.Filepath), outputPath, params.FormatType, opts); err != nil {
		return "", err
	}
	return fmt.Sprintf("File converted to %s", outputPath), nil
}
