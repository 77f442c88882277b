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

// sqlxPatternRepository implements domain.PatternRepository using sqlx.
type sqlxPatternRepository struct {
	db *sqlx.DB
}

// NewSQLXPatternRepository creates a new instance of sqlxPatternRepository.
func NewSQLXPatternRepository(db *sqlx.DB) domain.PatternRepository {
	return &sqlxPatternRepository{db: db}
}

func toDomainPattern(m *models.Pattern) *domain.Pattern {
	if m == nil {
		return nil
	}
	return &domain.Pattern{
		ID:                m.ID,
		TopicID:           m.TopicID,
		Pattern:           m.Pattern,
		PreferredApproach: m.PreferredApproach.String,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

const patternColumns = `id, topic_id, pattern, teacher_preferred_approach, created_at, updated_at`

// GetPatternsByTopic implements domain.PatternRepository.
func (r *sqlxPatternRepository) GetPatternsByTopic(ctx context.Context, topicID string) ([]*domain.Pattern, error) {
	var rows []models.Pattern
	query := `SELECT ` + patternColumns + ` FROM patterns WHERE topic_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, topicID); err != nil {
		return nil, fmt.Errorf("failed to list patterns for topic %s: %w", topicID, err)
	}

	patterns := make([]*domain.Pattern, 0, len(rows))
	for i := range rows {
		patterns = append(patterns, toDomainPattern(&rows[i]))
	}
	return patterns, nil
}

// GetPatternByID implements domain.PatternRepository.
func (r *sqlxPatternRepository) GetPatternByID(ctx context.Context, id string) (*domain.Pattern, error) {
	var row models.Pattern
	query := `SELECT ` + patternColumns + ` FROM patterns WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pattern by ID %s: %w", id, err)
	}
	return toDomainPattern(&row), nil
}

// SavePatterns implements domain.PatternRepository. Each text is
// inserted independently; the (topic_id, pattern) constraint absorbs
// duplicates silently, so a re-save of an existing template is a no-op
// rather than an error.
func (r *sqlxPatternRepository) SavePatterns(ctx context.Context, topicID string, texts []string) (int, error) {
	query := `INSERT INTO patterns (id, topic_id, pattern, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (topic_id, pattern) DO NOTHING`

	inserted := 0
	now := time.Now()
	for _, text := range texts {
		result, err := r.db.ExecContext(ctx, query, util.NewULID(), topicID, text, now, now)
		if err != nil {
			return inserted, fmt.Errorf("failed to save pattern %q: %w", text, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(rows)
	}
	return inserted, nil
}

// UpdatePreferredApproach implements domain.PatternRepository.
func (r *sqlxPatternRepository) UpdatePreferredApproach(ctx context.Context, id string, approach string) error {
	query := `UPDATE patterns SET teacher_preferred_approach = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, util.StringToNullString(approach), time.Now(), id); err != nil {
		return fmt.Errorf("failed to update pattern approach for %s: %w", id, err)
	}
	return nil
}
