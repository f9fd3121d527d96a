// Package tools defines the fixed operation catalog served over MCP. Every
// tool is a thin wrapper: resolve the workbook path against the configured
// base directory, decode the arguments, delegate to the excel package, and
// render a textual result.
package tools

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"xlsmcp/pkg/toolbox"
)

// Catalog builds the tool set bound to a base directory for workbook files.
type Catalog struct {
	baseDir string
	logger  *zap.Logger
}

// New creates a Catalog. Relative workbook paths in tool arguments resolve
// against baseDir; absolute paths are used as given. A nil logger disables
// logging.
func New(baseDir string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{baseDir: baseDir, logger: logger}
}

// Tools returns the full operation catalog.
func (c *Catalog) Tools() []toolbox.Tool {
	var tools []toolbox.Tool
	tools = append(tools, c.workbookTools()...)
	tools = append(tools, c.dataTools()...)
	tools = append(tools, c.sheetTools()...)
	tools = append(tools, c.formatTools()...)
	tools = append(tools, c.analyzeTools()...)
	tools = append(tools, c.convertTools()...)
	return tools
}

// resolvePath maps a workbook filename from the wire onto the filesystem.
func (c *Catalog) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.baseDir, name)
}

// decode unmarshals tool arguments into a typed parameter struct.
func decode(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// jsonResult marshals a result payload for the text content of a tool reply.
func jsonResult(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
