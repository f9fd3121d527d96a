package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON arguments and returns a text
// result. Failures are reported through the error; the transport layer turns
// them into error-flagged tool results rather than protocol faults.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is one named operation of the catalog: its wire name, description,
// JSON Schema for the arguments, and the handler that runs it.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}
