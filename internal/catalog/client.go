package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agently-mcp/internal/models"
)

// AgentsPath is the fixed path of the public agents endpoint.
const AgentsPath = "/api/agents/v1"

// Client reads agent listings from the Agently catalog.
//
// One GET per call. No retries and no timeout beyond what the underlying
// http.Client provides.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a catalog client for baseURL. apiKey may be empty for
// anonymous access.
func New(baseURL string, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + AgentsPath,
		apiKey:   apiKey,
		http:     http.DefaultClient,
		logger:   logger.With("component", "catalog_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full agents URL without a query string.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchAgents issues the catalog request for q.
//
// Errors are one of *TransportError, *StatusError or *ShapeError.
func (c *Client) FetchAgents(ctx context.Context, q *models.AgentQuery) (*models.CatalogResponse, error) {
	startTime := time.Now()
	rawQuery := Encode(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+rawQuery, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("catalog_status_error",
			"status", resp.StatusCode,
			"query", rawQuery,
		)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	report, err := decodeResponse(body)
	if err != nil {
		c.logger.Warn("catalog_shape_error", "error", err)
		return nil, err
	}

	c.logger.Debug("catalog_fetch",
		"query", rawQuery,
		"status", resp.StatusCode,
		"latency_ms", time.Since(startTime).Milliseconds(),
		"authenticated", c.apiKey != "",
	)

	return report, nil
}

// decodeResponse checks that body is an object carrying a found_agents array
// and a pagination value. Keys must match exactly. Content is left untouched.
func decodeResponse(body []byte) (*models.CatalogResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &ShapeError{Reason: fmt.Sprintf("body is not a JSON object: %v", err)}
	}

	report := &models.CatalogResponse{
		FoundAgents: fields["found_agents"],
		Pagination:  fields["pagination"],
	}
	if isNull(report.FoundAgents) || isNull(report.Pagination) {
		return nil, &ShapeError{Reason: "missing found_agents or pagination"}
	}

	if bytes.TrimSpace(report.FoundAgents)[0] != '[' {
		return nil, &ShapeError{Reason: "found_agents is not an array"}
	}

	return report, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
