package genai

import (
	"context"

	"stat-practice/internal/domain"
	"stat-practice/internal/logger"

	"go.uber.org/zap"
)

// PatternSuggester implements domain.PatternSuggester on top of a
// TextGenerator. Suggestions are returned to the caller, never
// persisted here.
type PatternSuggester struct {
	gen domain.TextGenerator
}

// NewPatternSuggester creates a new PatternSuggester.
func NewPatternSuggester(gen domain.TextGenerator) *PatternSuggester {
	return &PatternSuggester{gen: gen}
}

type rawSuggestion struct {
	Pattern string `json:"pattern"`
}

// SuggestPatterns implements domain.PatternSuggester.
func (s *PatternSuggester) SuggestPatterns(ctx context.Context, topicName string, existing []string) ([]string, error) {
	prompt := buildPatternPrompt(topicName, existing)

	completion, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var raw []rawSuggestion
	if err := validateAndDecode("pattern_suggestions", patternSuggestionSchema, completion, &raw); err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(raw))
	for _, r := range raw {
		suggestions = append(suggestions, r.Pattern)
	}

	logger.Get().Info("Suggested patterns",
		zap.String("topic", topicName),
		zap.Int("existing", len(existing)),
		zap.Int("suggested", len(suggestions)))
	return suggestions, nil
}

var _ domain.PatternSuggester = (*PatternSuggester)(nil)
