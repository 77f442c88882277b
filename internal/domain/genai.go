package domain

import "context"

// TextGenerator is the narrow port to the generative text service:
// one prompt in, one completion out. Prompt construction and response
// parsing live in the adapters built on top of it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratedQuestion is one question object produced by the LLM before
// it is attached to a (topic, pattern, difficulty) scope.
type GeneratedQuestion struct {
	QuestionText   string `json:"question_text"`
	CorrectAnswer  string `json:"correct_answer"`
	HintStats      string `json:"hint_stats"`
	HintPython     string `json:"hint_python"`
	SolutionStats  string `json:"solution_stats"`
	SolutionPython string `json:"solution_python"`
	Solution       string `json:"solution"`
}

// QuestionGenerator produces a batch of question candidates for a
// pattern template. A malformed completion is fatal here: callers get
// a CodeMalformedLLMResponse error, never a partial batch.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, patternText, approach string, difficulty Difficulty, count int) ([]*GeneratedQuestion, error)
}

// Evaluation is the semantic-equivalence verdict for one submission.
// Correct is true only when the evaluator answered the literal "yes".
type Evaluation struct {
	Correct bool
	Remark  string
}

// AnswerEvaluator judges a free-text answer against the stored
// canonical answer. A malformed completion surfaces as a
// CodeMalformedLLMResponse error so the caller can substitute the
// conservative fallback verdict; transport failures surface as-is.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, questionText, correctAnswer, userAnswer string) (*Evaluation, error)
}

// PatternSuggester proposes novel pattern templates for a topic given
// the ones that already exist. Suggestions are never persisted by the
// suggester itself; an empty result is a valid outcome.
type PatternSuggester interface {
	SuggestPatterns(ctx context.Context, topicName string, existing []string) ([]string, error)
}
