package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stat-practice/internal/domain"
	"stat-practice/internal/repository/models"
	"stat-practice/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:             m.ID,
		TopicID:        m.TopicID,
		PatternID:      m.PatternID,
		Difficulty:     domain.Difficulty(m.Difficulty),
		QuestionText:   m.QuestionText,
		CorrectAnswer:  m.CorrectAnswer,
		HintStats:      m.HintStats,
		HintPython:     m.HintPython,
		SolutionStats:  m.SolutionStats,
		SolutionPython: m.SolutionPython,
		Solution:       m.Solution,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

const questionColumns = `id, topic_id, pattern_id, difficulty, question_text, correct_answer,
	hint_stats, hint_python, solution_stats, solution_python, solution, created_at, updated_at`

// GetUnattemptedQuestion implements domain.QuestionRepository. The
// lowest id wins deliberately: older content is exhausted before newer
// content, and ids order by creation time.
func (r *sqlxQuestionRepository) GetUnattemptedQuestion(ctx context.Context, userID, patternID string, difficulty domain.Difficulty) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	WHERE pattern_id = $1
	  AND difficulty = $2
	  AND id NOT IN (
	    SELECT question_id FROM practice_history WHERE user_id = $3
	  )
	ORDER BY id
	LIMIT 1`

	if err := r.db.GetContext(ctx, &row, query, patternID, string(difficulty), userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unattempted question: %w", err)
	}
	return toDomainQuestion(&row), nil
}

// GetQuestionByID implements domain.QuestionRepository.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// GetQuestionSummaries implements domain.QuestionRepository.
func (r *sqlxQuestionRepository) GetQuestionSummaries(ctx context.Context, patternID string) ([]*domain.QuestionSummary, error) {
	type summaryRow struct {
		ID           string `db:"id"`
		QuestionText string `db:"question_text"`
	}

	var rows []summaryRow
	query := `SELECT id, question_text FROM questions WHERE pattern_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, patternID); err != nil {
		return nil, fmt.Errorf("failed to list questions for pattern %s: %w", patternID, err)
	}

	summaries := make([]*domain.QuestionSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &domain.QuestionSummary{ID: row.ID, QuestionText: row.QuestionText})
	}
	return summaries, nil
}

// GetLatestQuestion implements domain.QuestionRepository.
func (r *sqlxQuestionRepository) GetLatestQuestion(ctx context.Context, patternID string, difficulty domain.Difficulty) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	WHERE pattern_id = $1 AND difficulty = $2
	ORDER BY id DESC
	LIMIT 1`

	if err := r.db.GetContext(ctx, &row, query, patternID, string(difficulty)); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest question: %w", err)
	}
	return toDomainQuestion(&row), nil
}

// SaveQuestions implements domain.QuestionRepository. Inserts are
// independent best-effort statements; a text collision on the
// (topic_id, pattern_id, question_text) constraint is skipped silently
// and simply absent from the returned ids.
func (r *sqlxQuestionRepository) SaveQuestions(ctx context.Context, questions []*domain.Question) ([]string, error) {
	query := `INSERT INTO questions (
		id, topic_id, pattern_id, difficulty,
		question_text, correct_answer,
		hint_stats, hint_python,
		solution_stats, solution_python,
		solution, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (topic_id, pattern_id, question_text) DO NOTHING`

	insertedIDs := make([]string, 0, len(questions))
	now := time.Now()
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return insertedIDs, err
		}
		id := util.NewULID()
		result, err := r.db.ExecContext(ctx, query,
			id, q.TopicID, q.PatternID, string(q.Difficulty),
			q.QuestionText, q.CorrectAnswer,
			q.HintStats, q.HintPython,
			q.SolutionStats, q.SolutionPython,
			q.Solution, now, now,
		)
		if err != nil {
			return insertedIDs, fmt.Errorf("failed to save question: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return insertedIDs, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows > 0 {
			q.ID = id
			q.CreatedAt = now
			q.UpdatedAt = now
			insertedIDs = append(insertedIDs, id)
		}
	}
	return insertedIDs, nil
}
