package genai

// JSON Schemas the raw completions are validated against before any
// field is trusted. correct_answer is deliberately left untyped in the
// batch schema: models occasionally emit bare numbers or objects there
// despite the prompt, and those are coerced to text after validation.
const (
	questionBatchSchema = `{
		"type": "array",
		"minItems": 1,
		"items": {
			"type": "object",
			"properties": {
				"question_text":   {"type": "string", "minLength": 1},
				"hint_stats":      {"type": "string"},
				"hint_python":     {"type": "string"},
				"solution_stats":  {"type": "string"},
				"solution_python": {"type": "string"},
				"solution":        {"type": "string"}
			},
			"required": ["question_text", "correct_answer"]
		}
	}`

	evaluationSchema = `{
		"type": "object",
		"properties": {
			"correct": {"type": "string"},
			"remark":  {"type": "string"}
		},
		"required": ["correct"]
	}`

	patternSuggestionSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"pattern": {"type": "string", "minLength": 1}
			},
			"required": ["pattern"]
		}
	}`
)
