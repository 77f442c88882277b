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

// sqlxTopicRepository implements domain.TopicRepository using sqlx.
type sqlxTopicRepository struct {
	db *sqlx.DB
}

// NewSQLXTopicRepository creates a new instance of sqlxTopicRepository.
func NewSQLXTopicRepository(db *sqlx.DB) domain.TopicRepository {
	return &sqlxTopicRepository{db: db}
}

func toDomainTopic(m *models.Topic) *domain.Topic {
	if m == nil {
		return nil
	}
	return &domain.Topic{
		ID:                m.ID,
		Name:              m.Name,
		PreferredApproach: m.PreferredApproach.String,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

const topicColumns = `id, name, teacher_preferred_approach, created_at, updated_at`

// GetAllTopics implements domain.TopicRepository.
func (r *sqlxTopicRepository) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	var rows []models.Topic
	query := `SELECT ` + topicColumns + ` FROM topics ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	topics := make([]*domain.Topic, 0, len(rows))
	for i := range rows {
		topics = append(topics, toDomainTopic(&rows[i]))
	}
	return topics, nil
}

// GetTopicByID implements domain.TopicRepository.
func (r *sqlxTopicRepository) GetTopicByID(ctx context.Context, id string) (*domain.Topic, error) {
	var row models.Topic
	query := `SELECT ` + topicColumns + ` FROM topics WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic by ID %s: %w", id, err)
	}
	return toDomainTopic(&row), nil
}

// UpdatePreferredApproach implements domain.TopicRepository.
func (r *sqlxTopicRepository) UpdatePreferredApproach(ctx context.Context, id string, approach string) error {
	query := `UPDATE topics SET teacher_preferred_approach = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, util.StringToNullString(approach), time.Now(), id); err != nil {
		return fmt.Errorf("failed to update topic approach for %s: %w", id, err)
	}
	return nil
}
