package catalog

import (
	"net/url"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agently-mcp/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestEncodeDefaultsOnly(t *testing.T) {
	q := &models.AgentQuery{Page: 1, Limit: 10}
	assert.Equal(t, "page=1&limit=10", Encode(q))
}

func TestEncodeFullQuery(t *testing.T) {
	q := &models.AgentQuery{
		Page:                 2,
		Limit:                5,
		SearchTerm:           "code review",
		Categories:           []string{"Software", "Research"},
		InputModes:           []string{"text/plain"},
		OutputModes:          []string{"text/plain", "image/png"},
		SkillTags:            []string{"language", "translation"},
		SortByName:           models.SortAZ,
		SortByCreatedAt:      models.SortNewest,
		SortByUpdatedAt:      models.SortOldest,
		SortBySuccessRate:    models.SortHighest,
		SortByUsage:          models.SortLowest,
		SortByRequestPrice:   models.SortHighest,
		SortByStreamingPrice: models.SortLowest,
		IsLocal:              boolPtr(true),
		Explanation:          "find a reviewer",
	}

	want := "page=2&limit=5" +
		"&searchTerm=code+review" +
		"&categories=Software%2CResearch" +
		"&inputModes=text%2Fplain" +
		"&outputModes=text%2Fplain%2Cimage%2Fpng" +
		"&skillTags=language%2Ctranslation" +
		"&sortByName=a-z" +
		"&sortByCreatedAt=newest" +
		"&sortByUpdatedAt=oldest" +
		"&sortBySuccessRate=highest" +
		"&sortByUsage=lowest" +
		"&sortByRequestPrice=highest" +
		"&sortByStreamingPrice=lowest" +
		"&isLocal=true" +
		"&explanation=find+a+reviewer"

	assert.Equal(t, want, Encode(q))
}

func TestEncodeSkipsEmptyValues(t *testing.T) {
	q := &models.AgentQuery{
		Page:       3,
		Limit:      50,
		SearchTerm: "",
		Categories: []string{},
		SkillTags:  nil,
	}
	assert.Equal(t, "page=3&limit=50", Encode(q))
}

func TestEncodeIsLocalFalse(t *testing.T) {
	q := &models.AgentQuery{Page: 1, Limit: 10, IsLocal: boolPtr(false)}
	assert.Equal(t, "page=1&limit=10&isLocal=false", Encode(q))
}

func TestEncodeSpacesBecomePlus(t *testing.T) {
	q := &models.AgentQuery{
		Page:       1,
		Limit:      10,
		SearchTerm: "multi word  search",
		Categories: []string{"Data Analysis", "Content Creation"},
	}

	out := Encode(q)
	assert.NotContains(t, out, "%20")
	assert.Contains(t, out, "searchTerm=multi+word++search")
	assert.Contains(t, out, "categories=Data+Analysis%2CContent+Creation")
}

func TestEncodeLeavesOtherEscapesAlone(t *testing.T) {
	q := &models.AgentQuery{Page: 1, Limit: 10, SearchTerm: "100%20 off & more"}

	out := Encode(q)
	assert.Equal(t, "page=1&limit=10&searchTerm=100%2520+off+%26+more", out)

	values, err := url.ParseQuery(out)
	require.NoError(t, err)
	assert.Equal(t, "100%20 off & more", values.Get("searchTerm"))
}

func TestEncodeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("encoding the same query twice is identical", prop.ForAll(
		func(term string, tags []string, page int) bool {
			q := &models.AgentQuery{Page: page, Limit: 10, SearchTerm: term, SkillTags: tags}
			return Encode(q) == Encode(q)
		},
		gen.AnyString(),
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(1, 1000),
	))

	properties.Property("list values keep their order and are comma joined", prop.ForAll(
		func(tags []string) bool {
			q := &models.AgentQuery{Page: 1, Limit: 10, InputModes: tags}
			values, err := url.ParseQuery(Encode(q))
			if err != nil {
				return false
			}
			return values.Get("inputModes") == strings.Join(tags, ",")
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("free text never carries %20 and decodes back unchanged", prop.ForAll(
		func(words []string) bool {
			term := strings.Join(words, " ")
			out := Encode(&models.AgentQuery{Page: 1, Limit: 10, SearchTerm: term})
			if strings.Contains(out, "%20") {
				return false
			}
			values, err := url.ParseQuery(out)
			return err == nil && values.Get("searchTerm") == term
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}
