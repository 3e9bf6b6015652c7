package mcp

import (
	"context"
	"log/slog"

	"agently-mcp/internal/catalog"
	"agently-mcp/internal/models"
)

type correlationKey struct{}

// WithCorrelationID attaches a request correlation id to ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the id set by WithCorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// LogMCPRequest logs a validated tool call with structured fields
func LogMCPRequest(ctx context.Context, logger *slog.Logger, tool string, correlationID string, q *models.AgentQuery) {
	logger.InfoContext(ctx, "mcp_request",
		"component", "mcp-provider",
		"tool_name", tool,
		"correlation_id", correlationID,
		"query", catalog.Encode(q),
		"is_local", q.Local(),
	)
}

// LogMCPSuccess logs successful MCP tool execution with latency
func LogMCPSuccess(ctx context.Context, logger *slog.Logger, tool string, correlationID string, outcome string, latencyMS int64) {
	logger.InfoContext(ctx, "mcp_success",
		"component", "mcp-provider",
		"tool_name", tool,
		"correlation_id", correlationID,
		"outcome", outcome,
		"latency_ms", latencyMS,
	)
}

// LogMCPError logs tool failures with context
func LogMCPError(ctx context.Context, logger *slog.Logger, tool string, correlationID string, outcome string, errorMsg string) {
	logger.ErrorContext(ctx, "mcp_error",
		"component", "mcp-provider",
		"tool_name", tool,
		"correlation_id", correlationID,
		"outcome", outcome,
		"error_message", errorMsg,
	)
}
