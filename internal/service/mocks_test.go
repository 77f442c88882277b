package service

import (
	"context"
	"time"

	"stat-practice/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTopicRepository ---
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) GetTopicByID(ctx context.Context, id string) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) UpdatePreferredApproach(ctx context.Context, id string, approach string) error {
	args := m.Called(ctx, id, approach)
	return args.Error(0)
}

// --- MockPatternRepository ---
type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) GetPatternsByTopic(ctx context.Context, topicID string) ([]*domain.Pattern, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pattern), args.Error(1)
}

func (m *MockPatternRepository) GetPatternByID(ctx context.Context, id string) (*domain.Pattern, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pattern), args.Error(1)
}

func (m *MockPatternRepository) SavePatterns(ctx context.Context, topicID string, texts []string) (int, error) {
	args := m.Called(ctx, topicID, texts)
	return args.Int(0), args.Error(1)
}

func (m *MockPatternRepository) UpdatePreferredApproach(ctx context.Context, id string, approach string) error {
	args := m.Called(ctx, id, approach)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetUnattemptedQuestion(ctx context.Context, userID, patternID string, difficulty domain.Difficulty) (*domain.Question, error) {
	args := m.Called(ctx, userID, patternID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionSummaries(ctx context.Context, patternID string) ([]*domain.QuestionSummary, error) {
	args := m.Called(ctx, patternID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionSummary), args.Error(1)
}

func (m *MockQuestionRepository) GetLatestQuestion(ctx context.Context, patternID string, difficulty domain.Difficulty) (*domain.Question, error) {
	args := m.Called(ctx, patternID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestions(ctx context.Context, questions []*domain.Question) ([]string, error) {
	args := m.Called(ctx, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) UpdateStudentRemark(ctx context.Context, attemptID string, remark string) (int64, error) {
	args := m.Called(ctx, attemptID, remark)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, patternText, approach string, difficulty domain.Difficulty, count int) ([]*domain.GeneratedQuestion, error) {
	args := m.Called(ctx, patternText, approach, difficulty, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeneratedQuestion), args.Error(1)
}

// --- MockAnswerEvaluator ---
type MockAnswerEvaluator struct {
	mock.Mock
}

func (m *MockAnswerEvaluator) Evaluate(ctx context.Context, questionText, correctAnswer, userAnswer string) (*domain.Evaluation, error) {
	args := m.Called(ctx, questionText, correctAnswer, userAnswer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

// --- MockPatternSuggester ---
type MockPatternSuggester struct {
	mock.Mock
}

func (m *MockPatternSuggester) SuggestPatterns(ctx context.Context, topicName string, existing []string) ([]string, error) {
	args := m.Called(ctx, topicName, existing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
