package mcp

import (
	"context"
	"time"

	"agently-mcp/internal/models"
)

// AgentFetcher is the interface for reading agent listings from the catalog.
type AgentFetcher interface {
	FetchAgents(ctx context.Context, q *models.AgentQuery) (*models.CatalogResponse, error)
}

// Recorder receives per-call measurements. *instrumentation.Metrics
// satisfies it.
type Recorder interface {
	RecordToolCall(tool, outcome string)
	RecordCatalogLatency(latencyMs float64)
	RecordAgentsReturned(count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordToolCall(string, string) {}
func (nopRecorder) RecordCatalogLatency(float64)  {}
func (nopRecorder) RecordAgentsReturned(int)      {}

// ToolExecutor runs the fetch and envelope stages of fetch_agents.
type ToolExecutor struct {
	fetcher  AgentFetcher
	envelope *EnvelopeBuilder
	recorder Recorder
}

// NewToolExecutor creates a new tool executor. recorder may be nil.
func NewToolExecutor(fetcher AgentFetcher, envelope *EnvelopeBuilder, recorder Recorder) *ToolExecutor {
	if envelope == nil {
		envelope = NewEnvelopeBuilder(nil)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ToolExecutor{
		fetcher:  fetcher,
		envelope: envelope,
		recorder: recorder,
	}
}

// ExecuteFetchAgents fetches the listing for q and wraps it.
// The returned count is the number of agents in the listing.
func (te *ToolExecutor) ExecuteFetchAgents(ctx context.Context, q *models.AgentQuery) (*CallToolResult, int, error) {
	start := time.Now()
	resp, err := te.fetcher.FetchAgents(ctx, q)
	te.recorder.RecordCatalogLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, 0, err
	}

	count, err := countAgents(resp)
	if err != nil {
		return nil, 0, err
	}
	te.recorder.RecordAgentsReturned(count)

	result, err := te.envelope.wrap(resp, count, q.Local())
	if err != nil {
		return nil, 0, err
	}
	return result, count, nil
}
