package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ToolInvoker is the single entry point for tool calls: it validates
// arguments, runs the executor and turns every failure into an error result.
type ToolInvoker struct {
	executor *ToolExecutor
	parser   *ArgumentParser
	logger   *slog.Logger
}

// NewToolInvoker creates a new tool invoker with validation
func NewToolInvoker(executor *ToolExecutor, logger *slog.Logger) (*ToolInvoker, error) {
	parser, err := NewArgumentParser()
	if err != nil {
		return nil, err
	}

	return &ToolInvoker{
		executor: executor,
		parser:   parser,
		logger:   logger,
	}, nil
}

// ListTools returns the static tool listing.
func (ti *ToolInvoker) ListTools() *ListToolsResult {
	return &ListToolsResult{Tools: []Tool{FetchAgentsTool()}}
}

// InvokeTool dispatches to the tool named toolName. It never returns a Go
// error: failures come back as results with IsError set.
func (ti *ToolInvoker) InvokeTool(ctx context.Context, toolName string, args map[string]interface{}) (result *CallToolResult) {
	start := time.Now()
	correlationID := CorrelationIDFromContext(ctx)
	outcome := OutcomeSuccess

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeInternalError
			result = NewErrorResult(fmt.Sprintf("Internal error: %v", r))
		}
		ti.executor.recorder.RecordToolCall(toolLabel(toolName), outcome)
		if result.IsError {
			LogMCPError(ctx, ti.logger, toolName, correlationID, outcome, result.Content[0].Text)
			return
		}
		LogMCPSuccess(ctx, ti.logger, toolName, correlationID, outcome, time.Since(start).Milliseconds())
	}()

	switch toolName {
	case FetchAgentsToolName:
		result, outcome = ti.invokeFetchAgents(ctx, args)
	default:
		err := &UnknownToolError{Name: toolName}
		result, outcome = FormatToolError(err), Outcome(err)
	}
	return result
}

func (ti *ToolInvoker) invokeFetchAgents(ctx context.Context, args map[string]interface{}) (*CallToolResult, string) {
	q, err := ti.parser.Parse(args)
	if err != nil {
		return FormatToolError(err), Outcome(err)
	}

	LogMCPRequest(ctx, ti.logger, FetchAgentsToolName, CorrelationIDFromContext(ctx), q)

	result, count, err := ti.executor.ExecuteFetchAgents(ctx, q)
	if err != nil {
		return FormatToolError(err), Outcome(err)
	}
	if count == 0 {
		return result, OutcomeEmpty
	}
	return result, OutcomeSuccess
}
