package domain

import "context"

// TopicRepository is the port for topic persistence.
type TopicRepository interface {
	GetAllTopics(ctx context.Context) ([]*Topic, error)
	// GetTopicByID returns (nil, nil) when the topic does not exist.
	GetTopicByID(ctx context.Context, id string) (*Topic, error)
	// UpdatePreferredApproach overwrites the topic-level note. Zero rows
	// affected is not an error.
	UpdatePreferredApproach(ctx context.Context, id string, approach string) error
}

// PatternRepository is the port for pattern persistence.
type PatternRepository interface {
	GetPatternsByTopic(ctx context.Context, topicID string) ([]*Pattern, error)
	// GetPatternByID returns (nil, nil) when the pattern does not exist.
	GetPatternByID(ctx context.Context, id string) (*Pattern, error)
	// SavePatterns inserts pattern texts for a topic, silently skipping
	// duplicates via the (topic_id, pattern) uniqueness constraint.
	// It returns the number of rows actually inserted.
	SavePatterns(ctx context.Context, topicID string, texts []string) (int, error)
	UpdatePreferredApproach(ctx context.Context, id string, approach string) error
}

// QuestionRepository is the port for question persistence.
type QuestionRepository interface {
	// GetUnattemptedQuestion returns the oldest (lowest-id) question
	// under (pattern, difficulty) the user has never attempted, or
	// (nil, nil) when none exists.
	GetUnattemptedQuestion(ctx context.Context, userID, patternID string, difficulty Difficulty) (*Question, error)
	// GetQuestionByID returns (nil, nil) when the question does not exist.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	GetQuestionSummaries(ctx context.Context, patternID string) ([]*QuestionSummary, error)
	// GetLatestQuestion returns the newest (highest-id) question under
	// (pattern, difficulty), or (nil, nil) when none exists.
	GetLatestQuestion(ctx context.Context, patternID string, difficulty Difficulty) (*Question, error)
	// SaveQuestions inserts questions with silent duplicate-skip on the
	// (topic_id, pattern_id, question_text) uniqueness constraint and
	// returns the ids of rows actually inserted.
	SaveQuestions(ctx context.Context, questions []*Question) ([]string, error)
}

// AttemptRepository is the port for attempt persistence.
type AttemptRepository interface {
	// SaveAttempt persists a graded attempt and fills in its ID.
	SaveAttempt(ctx context.Context, attempt *Attempt) error
	// UpdateStudentRemark overwrites the student remark for an attempt.
	// It reports the number of rows affected; zero is not an error.
	UpdateStudentRemark(ctx context.Context, attemptID string, remark string) (int64, error)
}
