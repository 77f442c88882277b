package genai

import (
	"context"

	"stat-practice/internal/domain"
	"stat-practice/internal/logger"

	"go.uber.org/zap"
)

// AnswerEvaluator implements domain.AnswerEvaluator on top of a
// TextGenerator. It reports a malformed completion as a distinguished
// error instead of deciding the fallback itself; the grading policy
// (treat as incorrect) belongs to the service layer.
type AnswerEvaluator struct {
	gen domain.TextGenerator
}

// NewAnswerEvaluator creates a new AnswerEvaluator.
func NewAnswerEvaluator(gen domain.TextGenerator) *AnswerEvaluator {
	return &AnswerEvaluator{gen: gen}
}

type rawEvaluation struct {
	Correct string `json:"correct"`
	Remark  string `json:"remark"`
}

// Evaluate implements domain.AnswerEvaluator.
func (e *AnswerEvaluator) Evaluate(ctx context.Context, questionText, correctAnswer, userAnswer string) (*domain.Evaluation, error) {
	prompt := buildEvaluationPrompt(questionText, correctAnswer, userAnswer)

	completion, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var raw rawEvaluation
	if err := validateAndDecode("evaluation", evaluationSchema, completion, &raw); err != nil {
		logger.Get().Warn("Evaluator returned unparseable verdict",
			zap.Error(err),
			zap.String("raw_completion", completion))
		return nil, err
	}

	// Only the literal "yes" counts as correct; "no", mixed case or
	// anything unexpected grades as incorrect.
	return &domain.Evaluation{
		Correct: raw.Correct == "yes",
		Remark:  raw.Remark,
	}, nil
}

var _ domain.AnswerEvaluator = (*AnswerEvaluator)(nil)
