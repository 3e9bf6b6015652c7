package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"agently-mcp/internal/models"
)

// Encode builds the canonical query string for q.
//
// page and limit are always present. Every other key is emitted only when set,
// in a fixed order, with list values joined by commas so the catalog applies
// them as an AND filter. The catalog only understands '+' for spaces, so any
// %20 left by encoding is rewritten once at the end.
func Encode(q *models.AgentQuery) string {
	var b strings.Builder

	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	addOpt := func(key, value string) {
		if value != "" {
			add(key, value)
		}
	}
	addList := func(key string, values []string) {
		if len(values) > 0 {
			add(key, strings.Join(values, ","))
		}
	}

	add("page", strconv.Itoa(q.Page))
	add("limit", strconv.Itoa(q.Limit))
	addOpt("searchTerm", q.SearchTerm)
	addList("categories", q.Categories)
	addList("inputModes", q.InputModes)
	addList("outputModes", q.OutputModes)
	addList("skillTags", q.SkillTags)
	addOpt("sortByName", q.SortByName)
	addOpt("sortByCreatedAt", q.SortByCreatedAt)
	addOpt("sortByUpdatedAt", q.SortByUpdatedAt)
	addOpt("sortBySuccessRate", q.SortBySuccessRate)
	addOpt("sortByUsage", q.SortByUsage)
	addOpt("sortByRequestPrice", q.SortByRequestPrice)
	addOpt("sortByStreamingPrice", q.SortByStreamingPrice)
	if q.IsLocal != nil {
		add("isLocal", strconv.FormatBool(*q.IsLocal))
	}
	addOpt("explanation", q.Explanation)

	return strings.ReplaceAll(b.String(), "%20", "+")
}
