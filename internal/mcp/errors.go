package mcp

import (
	"errors"
	"fmt"

	"agently-mcp/internal/catalog"
)

// Call outcomes, used as the metrics label and in error logs.
const (
	OutcomeSuccess         = "success"
	OutcomeEmpty           = "empty"
	OutcomeValidationError = "validation_error"
	OutcomeTransportError  = "transport_error"
	OutcomeStatusError     = "status_error"
	OutcomeShapeError      = "shape_error"
	OutcomeUnknownTool     = "unknown_tool"
	OutcomeInternalError   = "internal_error"
)

// unknownToolLabel is the metrics tool label for every unrecognized name.
const unknownToolLabel = "unknown"

// toolLabel keeps the tool label bounded to known names.
func toolLabel(name string) string {
	if name == FetchAgentsToolName {
		return name
	}
	return unknownToolLabel
}

// UnknownToolError is returned for a tools/call naming a tool we do not have.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// Outcome classifies err for metrics and logs.
func Outcome(err error) string {
	var (
		validationErr  *ValidationError
		transportErr   *catalog.TransportError
		statusErr      *catalog.StatusError
		shapeErr       *catalog.ShapeError
		unknownToolErr *UnknownToolError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &validationErr):
		return OutcomeValidationError
	case errors.As(err, &transportErr):
		return OutcomeTransportError
	case errors.As(err, &statusErr):
		return OutcomeStatusError
	case errors.As(err, &shapeErr):
		return OutcomeShapeError
	case errors.As(err, &unknownToolErr):
		return OutcomeUnknownTool
	default:
		return OutcomeInternalError
	}
}

// FormatToolError turns any tool failure into an error result with one
// human-readable text block.
func FormatToolError(err error) *CallToolResult {
	if Outcome(err) == OutcomeInternalError {
		return NewErrorResult(fmt.Sprintf("Internal error: %s", err.Error()))
	}
	return NewErrorResult(err.Error())
}

// FormatMCPError formats protocol failures into JSON-RPC errors
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}
