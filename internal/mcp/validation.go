package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"agently-mcp/internal/models"
)

// SchemaValidator wraps JSON Schema compilation and validation
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator creates a validator from a JSON schema definition
func NewSchemaValidator(schemaMap map[string]interface{}) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7 // MCP uses JSON Schema Draft 7

	// Marshal schema map to JSON
	schemaJSON, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &SchemaValidator{schema: schema}, nil
}

// Validate validates parameters against the compiled schema.
// Every failing leaf is reported, not just the first one.
func (v *SchemaValidator) Validate(params interface{}) error {
	err := v.schema.Validate(params)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validation failed: %w", err)
	}

	var violations []FieldViolation
	collectViolations(ve, &violations)
	return newValidationError(violations)
}

func collectViolations(ve *jsonschema.ValidationError, out *[]FieldViolation) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectViolations(cause, out)
		}
		return
	}

	field := fieldFromPointer(ve.InstanceLocation)
	message := ve.Message
	if field == "categories" && strings.HasSuffix(ve.KeywordLocation, "/enum") {
		message = "contains a value outside the supported category list"
	}
	*out = append(*out, FieldViolation{Field: field, Message: message})
}

// fieldFromPointer turns "/categories/3" into "categories".
func fieldFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "/")
	if trimmed == "" {
		return "arguments"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// FieldViolation is one argument that broke one rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending argument of a tool call.
type ValidationError struct {
	Violations []FieldViolation
}

func newValidationError(violations []FieldViolation) *ValidationError {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Field != violations[j].Field {
			return violations[i].Field < violations[j].Field
		}
		return violations[i].Message < violations[j].Message
	})
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "Invalid input parameters: " + strings.Join(parts, "; ")
}

// Fields returns the offending field names in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

var (
	numericFields = []string{"page", "limit"}
	listFields    = []string{"categories", "inputModes", "outputModes", "skillTags"}
)

// CoerceArguments applies the lenient input rules before schema validation:
// numeric strings become numbers, comma separated strings become lists and
// "true", "1" or "" become true for isLocal. Values that cannot be coerced
// are passed through unchanged so the schema rejects them.
func CoerceArguments(args map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		out[k] = v
	}

	for _, name := range numericFields {
		if v, ok := out[name]; ok {
			out[name] = coerceNumber(v)
		}
	}
	for _, name := range listFields {
		if v, ok := out[name]; ok {
			out[name] = coerceList(v)
		}
	}
	if v, ok := out["isLocal"]; ok {
		out["isLocal"] = coerceBool(v)
	}

	return out
}

func coerceNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return v
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return v
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return v
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func coerceList(v interface{}) interface{} {
	switch l := v.(type) {
	case string:
		parts := strings.Split(l, ",")
		items := make([]interface{}, len(parts))
		for i, p := range parts {
			items[i] = p
		}
		return items
	case []string:
		items := make([]interface{}, len(l))
		for i, p := range l {
			items[i] = p
		}
		return items
	default:
		return v
	}
}

// coerceBool never maps a string to false; anything other than the truthy
// spellings stays a string and fails the boolean type check.
func coerceBool(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if s == "" || s == "1" || strings.EqualFold(s, "true") {
		return true
	}
	return v
}

// ArgumentParser turns a raw argument bag into a validated AgentQuery.
type ArgumentParser struct {
	validator *SchemaValidator
}

// NewArgumentParser compiles the fetch_agents schema.
func NewArgumentParser() (*ArgumentParser, error) {
	validator, err := NewSchemaValidator(FetchAgentsToolSchema())
	if err != nil {
		return nil, err
	}
	return &ArgumentParser{validator: validator}, nil
}

// Parse returns either a fully populated query or a *ValidationError.
func (p *ArgumentParser) Parse(args map[string]interface{}) (*models.AgentQuery, error) {
	coerced := CoerceArguments(args)

	if err := p.validator.Validate(coerced); err != nil {
		return nil, err
	}

	var violations []FieldViolation
	q := &models.AgentQuery{
		Page:  integerField(coerced, "page", models.DefaultPage, &violations),
		Limit: integerField(coerced, "limit", models.DefaultLimit, &violations),
	}
	if len(violations) > 0 {
		return nil, newValidationError(violations)
	}

	q.SearchTerm = stringField(coerced, "searchTerm")
	q.Categories = listField(coerced, "categories")
	q.InputModes = listField(coerced, "inputModes")
	q.OutputModes = listField(coerced, "outputModes")
	q.SkillTags = listField(coerced, "skillTags")
	q.SortByName = stringField(coerced, "sortByName")
	q.SortByCreatedAt = stringField(coerced, "sortByCreatedAt")
	q.SortByUpdatedAt = stringField(coerced, "sortByUpdatedAt")
	q.SortBySuccessRate = stringField(coerced, "sortBySuccessRate")
	q.SortByUsage = stringField(coerced, "sortByUsage")
	q.SortByRequestPrice = stringField(coerced, "sortByRequestPrice")
	q.SortByStreamingPrice = stringField(coerced, "sortByStreamingPrice")
	q.Explanation = stringField(coerced, "explanation")
	if b, ok := coerced["isLocal"].(bool); ok {
		q.IsLocal = &b
	}

	return q, nil
}

// integerField reads a schema-checked number, applying def only when the key
// is absent. Values that do not fit in an int are rejected.
func integerField(args map[string]interface{}, name string, def int, violations *[]FieldViolation) int {
	v, ok := args[name]
	if !ok {
		return def
	}
	f, _ := v.(float64)
	if f != math.Trunc(f) {
		*violations = append(*violations, FieldViolation{Field: name, Message: "must be an integer"})
		return 0
	}
	if f >= float64(math.MaxInt) {
		*violations = append(*violations, FieldViolation{Field: name, Message: "is too large"})
		return 0
	}
	return int(f)
}

func stringField(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func listField(args map[string]interface{}, name string) []string {
	items, _ := args[name].([]interface{})
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}
