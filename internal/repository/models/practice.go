package models

import (
	"database/sql"
	"time"
)

// Topic row in the topics table.
type Topic struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	PreferredApproach sql.NullString `db:"teacher_preferred_approach"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Pattern row in the patterns table. (topic_id, pattern) is unique.
type Pattern struct {
	ID                string         `db:"id"`
	TopicID           string         `db:"topic_id"`
	Pattern           string         `db:"pattern"`
	PreferredApproach sql.NullString `db:"teacher_preferred_approach"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Question row in the questions table.
// (topic_id, pattern_id, question_text) is unique; that constraint is
// the sole duplicate-prevention mechanism for generated content.
type Question struct {
	ID             string    `db:"id"`
	TopicID        string    `db:"topic_id"`
	PatternID      string    `db:"pattern_id"`
	Difficulty     string    `db:"difficulty"`
	QuestionText   string    `db:"question_text"`
	CorrectAnswer  string    `db:"correct_answer"`
	HintStats      string    `db:"hint_stats"`
	HintPython     string    `db:"hint_python"`
	SolutionStats  string    `db:"solution_stats"`
	SolutionPython string    `db:"solution_python"`
	Solution       string    `db:"solution"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Attempt row in the practice_history table.
type Attempt struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	TopicID        string    `db:"topic_id"`
	PatternID      string    `db:"pattern_id"`
	QuestionID     string    `db:"question_id"`
	Difficulty     string    `db:"difficulty"`
	IsCorrect      bool      `db:"is_correct"`
	UserAnswer     string    `db:"user_answer"`
	StudentRemark  string    `db:"student_remark"`
	AIRemark       string    `db:"ai_remark"`
	UsedHintStats  bool      `db:"used_hint_stats"`
	UsedHintPython bool      `db:"used_hint_python"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
