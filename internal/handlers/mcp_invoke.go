package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"agently-mcp/internal/mcp"
)

// MCPInvokeHandler serves JSON-RPC requests over the SSE transport.
type MCPInvokeHandler struct {
	dispatcher *mcp.Dispatcher
	logger     *slog.Logger
}

// NewMCPInvokeHandler creates a new MCP invocation handler
func NewMCPInvokeHandler(dispatcher *mcp.Dispatcher, logger *slog.Logger) *MCPInvokeHandler {
	return &MCPInvokeHandler{
		dispatcher: dispatcher,
		logger:     logger.With("handler", "mcp_sse"),
	}
}

// ServeHTTP handles POST /mcp/sse. One request in, one SSE event out.
func (h *MCPInvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	correlationID := middleware.GetReqID(r.Context())
	ctx := mcp.WithCorrelationID(r.Context(), correlationID)

	sseWriter := mcp.NewSSEWriter(w)

	req, err := mcp.ParseJSONRPCRequest(r.Body)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		h.logger.Warn("mcp_bad_request", "error", rpcErr.Message, "correlation_id", correlationID)
		if err := sseWriter.SendError(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data); err != nil {
			h.logger.Error("sse_send_failed", "error", err, "correlation_id", correlationID)
		}
		return
	}

	resp := h.dispatcher.Handle(ctx, req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := sseWriter.Send(resp); err != nil {
		h.logger.Error("sse_send_failed", "error", err, "correlation_id", correlationID)
	}
}
