package mcp

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agently-mcp/internal/models"
)

func newParser(t *testing.T) *ArgumentParser {
	t.Helper()
	p, err := NewArgumentParser()
	require.NoError(t, err)
	return p
}

func requireViolation(t *testing.T, err error, field string) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), field)
	return ve
}

func TestParseDefaults(t *testing.T) {
	q, err := newParser(t).Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultPage, q.Page)
	assert.Equal(t, models.DefaultLimit, q.Limit)
	assert.Nil(t, q.IsLocal)
	assert.Nil(t, q.Categories)
	assert.Empty(t, q.SearchTerm)
}

func TestParseLimitBounds(t *testing.T) {
	p := newParser(t)

	for _, limit := range []interface{}{1, 50, "1", "50", 25.0} {
		q, err := p.Parse(map[string]interface{}{"limit": limit})
		require.NoError(t, err, "limit %v", limit)
		assert.GreaterOrEqual(t, q.Limit, 1)
		assert.LessOrEqual(t, q.Limit, 50)
	}

	for _, limit := range []interface{}{0, 51, "0", "51", -3} {
		_, err := p.Parse(map[string]interface{}{"limit": limit})
		requireViolation(t, err, "limit")
	}
}

func TestParsePage(t *testing.T) {
	p := newParser(t)

	q, err := p.Parse(map[string]interface{}{"page": " 7 "})
	require.NoError(t, err)
	assert.Equal(t, 7, q.Page)

	for _, page := range []interface{}{0, "", "abc", 1.5, nil, true, "1e300"} {
		_, err := p.Parse(map[string]interface{}{"page": page})
		requireViolation(t, err, "page")
	}
}

func TestParseLargePage(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32 bits")
	}

	q, err := newParser(t).Parse(map[string]interface{}{"page": "3000000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(3000000000), int64(q.Page))
}

func TestParseSearchTermLength(t *testing.T) {
	p := newParser(t)

	_, err := p.Parse(map[string]interface{}{"searchTerm": strings.Repeat("a", 250)})
	require.NoError(t, err)

	_, err = p.Parse(map[string]interface{}{"searchTerm": strings.Repeat("a", 251)})
	requireViolation(t, err, "searchTerm")
}

func TestParseListFields(t *testing.T) {
	q, err := newParser(t).Parse(map[string]interface{}{
		"categories":  "Software,Research",
		"inputModes":  []interface{}{"text/plain", "application/json"},
		"outputModes": []string{"image/png"},
		"skillTags":   "language,translation,2025",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Software", "Research"}, q.Categories)
	assert.Equal(t, []string{"text/plain", "application/json"}, q.InputModes)
	assert.Equal(t, []string{"image/png"}, q.OutputModes)
	assert.Equal(t, []string{"language", "translation", "2025"}, q.SkillTags)
}

func TestParseCategoriesOutsideEnum(t *testing.T) {
	_, err := newParser(t).Parse(map[string]interface{}{
		"categories": []interface{}{"Software", "Time Travel"},
	})
	ve := requireViolation(t, err, "categories")
	assert.Equal(t, []string{"categories"}, ve.Fields())
	assert.Contains(t, ve.Error(), "categories")
}

func TestParseListMaxItems(t *testing.T) {
	tags := make([]interface{}, 21)
	for i := range tags {
		tags[i] = "tag"
	}
	_, err := newParser(t).Parse(map[string]interface{}{"skillTags": tags})
	requireViolation(t, err, "skillTags")

	_, err = newParser(t).Parse(map[string]interface{}{"skillTags": tags[:20]})
	require.NoError(t, err)
}

func TestParseListWrongItemType(t *testing.T) {
	_, err := newParser(t).Parse(map[string]interface{}{"inputModes": []interface{}{"text/plain", 3.0}})
	requireViolation(t, err, "inputModes")
}

func TestParseSortEnums(t *testing.T) {
	p := newParser(t)

	q, err := p.Parse(map[string]interface{}{
		"sortByName":           "z-a",
		"sortByCreatedAt":      "newest",
		"sortByUpdatedAt":      "oldest",
		"sortBySuccessRate":    "highest",
		"sortByUsage":          "lowest",
		"sortByRequestPrice":   "highest",
		"sortByStreamingPrice": "lowest",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SortZA, q.SortByName)
	assert.Equal(t, models.SortNewest, q.SortByCreatedAt)
	assert.Equal(t, models.SortOldest, q.SortByUpdatedAt)
	assert.Equal(t, models.SortHighest, q.SortBySuccessRate)
	assert.Equal(t, models.SortLowest, q.SortByUsage)
	assert.Equal(t, models.SortHighest, q.SortByRequestPrice)
	assert.Equal(t, models.SortLowest, q.SortByStreamingPrice)

	for field, value := range map[string]string{
		"sortByName":        "A-Z",
		"sortByCreatedAt":   "highest",
		"sortBySuccessRate": "newest",
	} {
		_, err := p.Parse(map[string]interface{}{field: value})
		requireViolation(t, err, field)
	}
}

func TestParseIsLocal(t *testing.T) {
	p := newParser(t)

	for _, v := range []interface{}{true, "true", "TRUE", "True", "1", ""} {
		q, err := p.Parse(map[string]interface{}{"isLocal": v})
		require.NoError(t, err, "isLocal %q", v)
		require.NotNil(t, q.IsLocal)
		assert.True(t, *q.IsLocal, "isLocal %q", v)
	}

	q, err := p.Parse(map[string]interface{}{"isLocal": false})
	require.NoError(t, err)
	require.NotNil(t, q.IsLocal)
	assert.False(t, *q.IsLocal)

	for _, v := range []interface{}{"false", "0", "yes", 1.0} {
		_, err := p.Parse(map[string]interface{}{"isLocal": v})
		requireViolation(t, err, "isLocal")
	}
}

func TestParseReportsEveryViolation(t *testing.T) {
	_, err := newParser(t).Parse(map[string]interface{}{
		"limit":       51,
		"sortByUsage": "most",
		"categories":  "Nope",
		"explanation": "looking for a translator",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"categories", "limit", "sortByUsage"}, ve.Fields())
	assert.True(t, strings.HasPrefix(ve.Error(), "Invalid input parameters: "))
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	q, err := newParser(t).Parse(map[string]interface{}{"unexpected": 1, "explanation": "why"})
	require.NoError(t, err)
	assert.Equal(t, "why", q.Explanation)
}

func TestCoerceArgumentsDoesNotMutateInput(t *testing.T) {
	args := map[string]interface{}{"limit": "5", "skillTags": "a,b"}
	coerced := CoerceArguments(args)

	assert.Equal(t, "5", args["limit"])
	assert.Equal(t, 5.0, coerced["limit"])
	assert.Equal(t, []interface{}{"a", "b"}, coerced["skillTags"])
}
