package models

import "encoding/json"

// Sort orders accepted by the catalog.
const (
	SortAZ      = "a-z"
	SortZA      = "z-a"
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 50
	MaxSearchTerm   = 250
	MaxFilterValues = 20
)

// AgentQuery is a validated fetch_agents request.
//
// Optional scalars use the zero value for "absent"; IsLocal is a pointer
// because false is a meaningful value.
type AgentQuery struct {
	// Pagination
	Page  int
	Limit int

	// Filters
	SearchTerm  string
	Categories  []string
	InputModes  []string
	OutputModes []string
	SkillTags   []string

	// Sorting
	SortByName           string
	SortByCreatedAt      string
	SortByUpdatedAt      string
	SortBySuccessRate    string
	SortByUsage          string
	SortByRequestPrice   string
	SortByStreamingPrice string

	IsLocal     *bool
	Explanation string
}

// Local reports whether the query targets locally installed agents.
func (q *AgentQuery) Local() bool {
	return q.IsLocal != nil && *q.IsLocal
}

// CatalogResponse is the body returned by the agents endpoint.
// Both fields are untrusted and kept as raw JSON.
type CatalogResponse struct {
	FoundAgents json.RawMessage `json:"found_agents"`
	Pagination  json.RawMessage `json:"pagination"`
}
