package mcp

import (
	"context"
	"encoding/json"
	"io"
)

// ParseJSONRPCRequest parses a JSON-RPC 2.0 request from a reader
// Returns error for invalid JSON or malformed JSON-RPC requests
func ParseJSONRPCRequest(r io.Reader) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, &RPCError{
			Code:    ParseError,
			Message: "Invalid JSON",
			Data:    err.Error(),
		}
	}
	return validateRequest(&req)
}

// DecodeJSONRPCRequest parses one JSON-RPC 2.0 message from a byte slice.
func DecodeJSONRPCRequest(data []byte) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &RPCError{
			Code:    ParseError,
			Message: "Invalid JSON",
			Data:    err.Error(),
		}
	}
	return validateRequest(&req)
}

func validateRequest(req *JSONRPCRequest) (*JSONRPCRequest, error) {
	if req.JSONRPC != "2.0" {
		return nil, &RPCError{
			Code:    InvalidRequest,
			Message: "Invalid JSON-RPC version (must be '2.0')",
			Data:    req.JSONRPC,
		}
	}

	if req.Method == "" {
		return nil, &RPCError{
			Code:    InvalidRequest,
			Message: "Missing 'method' field",
		}
	}

	return req, nil
}

// ParseCallToolParams extracts tools/call parameters from JSON-RPC params
func ParseCallToolParams(params json.RawMessage) (*CallToolParams, error) {
	if len(params) == 0 {
		return nil, &RPCError{
			Code:    InvalidParams,
			Message: "Missing parameters for tools/call",
		}
	}

	var toolParams CallToolParams
	if err := json.Unmarshal(params, &toolParams); err != nil {
		return nil, &RPCError{
			Code:    InvalidParams,
			Message: "Invalid tools/call parameters",
			Data:    err.Error(),
		}
	}

	if toolParams.Name == "" {
		return nil, &RPCError{
			Code:    InvalidParams,
			Message: "Missing 'name' field in tools/call parameters",
		}
	}

	return &toolParams, nil
}

// NewJSONRPCError creates a JSON-RPC error response
func NewJSONRPCError(id interface{}, code int, message string, data interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// NewJSONRPCResult creates a JSON-RPC success response
func NewJSONRPCResult(id interface{}, result interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// Dispatcher routes JSON-RPC methods to the tool invoker. It holds no
// per-call state and is safe for concurrent use.
type Dispatcher struct {
	invoker *ToolInvoker
}

// NewDispatcher creates a dispatcher for invoker.
func NewDispatcher(invoker *ToolInvoker) *Dispatcher {
	return &Dispatcher{invoker: invoker}
}

// Handle processes one request. Notifications get no reply and no side
// effects, so a tools/call without an id never reaches the catalog.
func (d *Dispatcher) Handle(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	if req.IsNotification() {
		return nil
	}

	var resp *JSONRPCResponse

	switch req.Method {
	case "initialize":
		resp = NewJSONRPCResult(req.ID, &InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]interface{}{"tools": map[string]interface{}{}},
			ServerInfo:      ServerInfo{Name: ServerName, Version: ServerVersion},
		})
	case "ping":
		resp = NewJSONRPCResult(req.ID, map[string]interface{}{})
	case "tools/list", "list_tools":
		resp = NewJSONRPCResult(req.ID, d.invoker.ListTools())
	case "tools/call", "call_tool":
		toolParams, err := ParseCallToolParams(req.Params)
		if err != nil {
			rpcErr := FormatMCPError(err)
			resp = NewJSONRPCError(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
			break
		}
		resp = NewJSONRPCResult(req.ID, d.invoker.InvokeTool(ctx, toolParams.Name, toolParams.Arguments))
	default:
		resp = NewJSONRPCError(req.ID, MethodNotFound, "Method not found", req.Method)
	}

	return resp
}
