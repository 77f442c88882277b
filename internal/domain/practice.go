package domain

import (
	"strings"
	"time"
)

// Difficulty is the closed difficulty scale shared by questions,
// attempts and generation requests.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty validates a difficulty value from the outside world.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(value) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(value), nil
	}
	return "", NewInvalidDifficultyError(value)
}

func (d Difficulty) String() string {
	return string(d)
}

// Topic is an instructor-created subject area. The preferred-approach
// note is advisory text folded into generation prompts.
type Topic struct {
	ID                string
	Name              string
	PreferredApproach string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Pattern is a reusable question-template description scoping a family
// of generated questions. (topic, pattern text) is unique.
type Pattern struct {
	ID                string
	TopicID           string
	Pattern           string
	PreferredApproach string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the pattern
func (p *Pattern) Validate() error {
	if p.TopicID == "" {
		return NewInvalidInputError("topic ID is required")
	}
	if strings.TrimSpace(p.Pattern) == "" {
		return NewInvalidInputError("pattern text is required")
	}
	return nil
}

// Question is one practice question. CorrectAnswer is always plain
// text; grading is a semantic judgment against it, never a structured
// numeric comparison.
type Question struct {
	ID             string
	TopicID        string
	PatternID      string
	Difficulty     Difficulty
	QuestionText   string
	CorrectAnswer  string
	HintStats      string
	HintPython     string
	SolutionStats  string
	SolutionPython string
	Solution       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.TopicID == "" {
		return NewInvalidInputError("topic ID is required")
	}
	if q.PatternID == "" {
		return NewInvalidInputError("pattern ID is required")
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		return NewInvalidInputError("question text is required")
	}
	if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
		return err
	}
	return nil
}

// QuestionSummary is the id + text projection used for listings.
type QuestionSummary struct {
	ID           string
	QuestionText string
}

// Attempt is one graded submission. The user answer is stored verbatim;
// only StudentRemark is mutable after creation.
type Attempt struct {
	ID             string
	UserID         string
	TopicID        string
	PatternID      string
	QuestionID     string
	Difficulty     Difficulty
	IsCorrect      bool
	UserAnswer     string
	StudentRemark  string
	AIRemark       string
	UsedHintStats  bool
	UsedHintPython bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CombineApproaches builds the combined preferred-approach guidance for
// generation prompts: topic-level note first, pattern-level note second,
// blank entries dropped, joined by a single newline.
func CombineApproaches(topicApproach, patternApproach string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{topicApproach, patternApproach} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}
