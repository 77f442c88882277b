package genai

import (
	"context"
	"encoding/json"

	"stat-practice/internal/domain"
	"stat-practice/internal/logger"

	"go.uber.org/zap"
)

// QuestionGenerator implements domain.QuestionGenerator on top of a
// TextGenerator. Parsing failure is fatal for generation: the caller
// gets an error, never a partial batch.
type QuestionGenerator struct {
	gen domain.TextGenerator
}

// NewQuestionGenerator creates a new QuestionGenerator.
func NewQuestionGenerator(gen domain.TextGenerator) *QuestionGenerator {
	return &QuestionGenerator{gen: gen}
}

// rawQuestion mirrors one generated object on the wire. The answer
// stays raw until coercion because the model sometimes ignores the
// "plain string" instruction.
type rawQuestion struct {
	QuestionText   string          `json:"question_text"`
	CorrectAnswer  json.RawMessage `json:"correct_answer"`
	HintStats      string          `json:"hint_stats"`
	HintPython     string          `json:"hint_python"`
	SolutionStats  string          `json:"solution_stats"`
	SolutionPython string          `json:"solution_python"`
	Solution       string          `json:"solution"`
}

// GenerateQuestions implements domain.QuestionGenerator.
func (g *QuestionGenerator) GenerateQuestions(ctx context.Context, patternText, approach string, difficulty domain.Difficulty, count int) ([]*domain.GeneratedQuestion, error) {
	prompt := buildQuestionPrompt(patternText, approach, difficulty, count)

	completion, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var raw []rawQuestion
	if err := validateAndDecode("question_batch", questionBatchSchema, completion, &raw); err != nil {
		logger.Get().Error("Failed to parse generated question batch",
			zap.Error(err),
			zap.String("pattern", patternText),
			zap.String("difficulty", difficulty.String()))
		return nil, err
	}

	questions := make([]*domain.GeneratedQuestion, 0, len(raw))
	for _, q := range raw {
		questions = append(questions, &domain.GeneratedQuestion{
			QuestionText:   q.QuestionText,
			CorrectAnswer:  coerceToText(q.CorrectAnswer),
			HintStats:      q.HintStats,
			HintPython:     q.HintPython,
			SolutionStats:  q.SolutionStats,
			SolutionPython: q.SolutionPython,
			Solution:       q.Solution,
		})
	}

	logger.Get().Info("Generated question batch",
		zap.Int("requested", count),
		zap.Int("received", len(questions)),
		zap.String("difficulty", difficulty.String()))
	return questions, nil
}

var _ domain.QuestionGenerator = (*QuestionGenerator)(nil)
