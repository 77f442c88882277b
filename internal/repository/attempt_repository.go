package repository

import (
	"context"
	"fmt"
	"time"

	"stat-practice/internal/domain"
	"stat-practice/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

// SaveAttempt implements domain.AttemptRepository. The submitted answer
// is stored verbatim, never normalized.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot save nil attempt")
	}

	attempt.ID = util.NewULID()
	attempt.CreatedAt = time.Now()
	attempt.UpdatedAt = attempt.CreatedAt

	query := `INSERT INTO practice_history (
		id, user_id, topic_id, pattern_id, question_id, difficulty,
		is_correct, user_answer, student_remark, ai_remark,
		used_hint_stats, used_hint_python, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		attempt.ID, attempt.UserID, attempt.TopicID, attempt.PatternID,
		attempt.QuestionID, string(attempt.Difficulty),
		attempt.IsCorrect, attempt.UserAnswer,
		attempt.StudentRemark, attempt.AIRemark,
		attempt.UsedHintStats, attempt.UsedHintPython,
		attempt.CreatedAt, attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// UpdateStudentRemark implements domain.AttemptRepository. There is no
// existence check: amending an unknown attempt id affects zero rows and
// is reported as such, not as an error.
func (r *sqlxAttemptRepository) UpdateStudentRemark(ctx context.Context, attemptID string, remark string) (int64, error) {
	query := `UPDATE practice_history SET student_remark = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, remark, time.Now(), attemptID)
	if err != nil {
		return 0, fmt.Errorf("failed to update student remark for %s: %w", attemptID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
