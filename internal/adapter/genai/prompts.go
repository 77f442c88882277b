package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"stat-practice/internal/domain"
)

// buildQuestionPrompt builds the generation prompt for a batch of
// statistics questions following one pattern template. All
// python-flavored guidance is pinned to scipy.stats so regenerated
// banks stay consistent.
func buildQuestionPrompt(patternText, approach string, difficulty domain.Difficulty, count int) string {
	if strings.TrimSpace(approach) == "" {
		approach = "(none provided)"
	}

	return fmt.Sprintf(`You are an expert statistics instructor and Python tutor.

Generate %d STATISTICS practice questions that strictly follow the PATTERN,
match the DIFFICULTY level, and follow the teacher's preferred approach.

PATTERN: "%s"

PREFERRED APPROACH:
%s

DIFFICULTY: %s

====================================================
DIFFICULTY GUIDELINES
====================================================
EASY:
- Direct statistical computation
- All numbers explicitly provided
- One-step, no interpretation

MEDIUM:
- Real-world scenario
- Student must identify the statistical concept
- May involve 1-2 steps, still numeric

HARD:
- Real-world context with few hints
- Student must infer the correct statistical method
- Multi-step but final answer must be numeric

====================================================
QUESTION RULES
====================================================
1. Only generate STATISTICS questions.
2. The question must strictly match the PATTERN.
3. Use valid statistical parameters (n, p, k, mu, sigma, etc.).
4. Provide NUMERICAL final answers.
5. Provide TWO types of hints:
   - hint_stats  -> natural-language statistics hint
   - hint_python -> Python hint using ONLY scipy.stats
6. Provide TWO types of solutions:
   - solution_stats  -> step-by-step statistical reasoning
   - solution_python -> Python code using ONLY scipy.stats
7. Also provide "solution": a single combined walkthrough.
8. Do NOT output JSON or objects anywhere inside question_text, hints, or solutions.
9. correct_answer MUST be a plain string.
10. At the END of each question_text, append a short line telling the
    student how to type the answer (e.g. "Submit answer as: p = ___").
    No JSON. No braces. No quotes.

====================================================
OUTPUT FORMAT (STRICT)
====================================================
Return ONLY a JSON array of %d objects:

[
  {
    "question_text": "...",
    "correct_answer": "...",
    "hint_stats": "...",
    "hint_python": "...",
    "solution_stats": "...",
    "solution_python": "...",
    "solution": "..."
  }
]

Rules:
- No code fences
- No commentary
- No extra text`, count, patternText, approach, difficulty, count)
}

// buildEvaluationPrompt builds the semantic-equivalence judgment prompt
// for one submission. The question and canonical answer arrive trimmed.
func buildEvaluationPrompt(questionText, correctAnswer, userAnswer string) string {
	return fmt.Sprintf(`You are an expert statistics instructor.

Evaluate the student's answer SEMANTICALLY, allowing:
- numeric equivalents
- rounding differences (within 1-2%%)
- synonyms (mu/mean, sigma/sd)
- format or ordering differences
- punctuation and spacing variations

Correctness is based on meaning, not formatting.

QUESTION
%s

CORRECT ANSWER
%s

STUDENT ANSWER
%s

STRICT JSON OUTPUT:
{
  "correct": "yes" or "no",
  "remark": "<short constructive feedback>"
}`, questionText, correctAnswer, userAnswer)
}

// buildPatternPrompt builds the prompt proposing novel pattern
// templates for a topic. Returning an empty array is the expected
// outcome when nothing new is warranted.
func buildPatternPrompt(topicName string, existing []string) string {
	existingJSON, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		existingJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are an expert STATISTICS instructor.

TOPIC: "%s"

Here are the CURRENT problem patterns used:
%s

TASK:
Suggest NEW problem-pattern templates ONLY IF they add genuine statistical learning value.
If nothing meaningful can be added, return [].

STRICT RULES:
- A "pattern" is a short template describing a TYPE of statistics question.
- DO NOT generate full questions.
- DO NOT repeat or paraphrase existing patterns.
- DO NOT generate non-statistics patterns.
- No more than 3 new patterns.
- If nothing valuable, return [].

FORMAT (STRICT):
[
  {"pattern": "..."},
  {"pattern": "..."}
]
No commentary.
No extra text.`, topicName, existingJSON)
}
