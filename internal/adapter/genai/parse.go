package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"stat-practice/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var fenceOpenRe = regexp.MustCompile("(?i)```json")

// stripCodeFence removes a markdown code fence the model may have
// wrapped around its output despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = fenceOpenRe.ReplaceAllString(s, "")
		s = strings.ReplaceAll(s, "```", "")
		s = strings.TrimSpace(s)
	}
	return s
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateAndDecode fence-strips raw completion text, validates it
// against the named schema and decodes it into out. Any failure along
// the way is a CodeMalformedLLMResponse domain error; call sites decide
// whether that is fatal (generation) or triggers the fallback verdict
// (evaluation).
func validateAndDecode(name, schemaDef, raw string, out any) error {
	cleaned := stripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return domain.NewMalformedLLMResponseError(fmt.Errorf("invalid JSON: %w", err))
	}

	compiled, err := getCompiledSchema(name, schemaDef)
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("compile schema %q", name), err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return domain.NewMalformedLLMResponseError(fmt.Errorf("schema validation failed: %w", err))
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return domain.NewMalformedLLMResponseError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name, schemaDef string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var defParsed any
	if err := json.Unmarshal([]byte(schemaDef), &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// coerceToText flattens a raw JSON value into the plain-text form the
// canonical-answer column guarantees: strings are unquoted, everything
// else keeps its JSON rendering.
func coerceToText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
