package service

import (
	"context"
	"errors"
	"testing"

	"stat-practice/internal/domain"
	"stat-practice/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testQuestion(id string) *domain.Question {
	return &domain.Question{
		ID:            id,
		TopicID:       "topic-1",
		PatternID:     "pattern-1",
		Difficulty:    domain.DifficultyMedium,
		QuestionText:  "A sample has mean 10 and sd 2. What is the z-score of 14?",
		CorrectAnswer: "2",
		HintStats:     "z = (x - mean) / sd",
		Solution:      "z = (14 - 10) / 2 = 2",
	}
}

func newQuestionServiceForTest() (*MockQuestionRepository, *MockTopicRepository, *MockPatternRepository, *MockQuestionGenerator, QuestionService) {
	questionRepo := new(MockQuestionRepository)
	topicRepo := new(MockTopicRepository)
	patternRepo := new(MockPatternRepository)
	generator := new(MockQuestionGenerator)
	svc := NewQuestionService(questionRepo, topicRepo, patternRepo, generator)
	return questionRepo, topicRepo, patternRepo, generator, svc
}

func TestGetNextQuestion_StoredQuestionAvailable(t *testing.T) {
	questionRepo, _, _, generator, svc := newQuestionServiceForTest()

	q := testQuestion("q-1")
	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyMedium).
		Return(q, nil).Once()

	resp, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Medium",
	})

	assert.NoError(t, err)
	assert.Equal(t, "q-1", resp.ID)
	assert.Equal(t, "2", resp.CorrectAnswer)
	generator.AssertNotCalled(t, "GenerateQuestions")
	questionRepo.AssertExpectations(t)
}

func TestGetNextQuestion_GeneratesWhenExhausted(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyHard).
		Return(nil, nil).Once()
	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "z-score computation", PreferredApproach: "use scipy.stats.norm"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-1").
		Return(&domain.Topic{ID: "topic-1", Name: "Descriptive statistics", PreferredApproach: "prefer formulas over tables"}, nil).Once()

	generated := make([]*domain.GeneratedQuestion, selectorBatchSize)
	for i := range generated {
		generated[i] = &domain.GeneratedQuestion{QuestionText: "generated", CorrectAnswer: "1"}
	}
	generator.On("GenerateQuestions", mock.Anything, "z-score computation",
		"prefer formulas over tables\nuse scipy.stats.norm", domain.DifficultyHard, selectorBatchSize).
		Return(generated, nil).Once()
	questionRepo.On("SaveQuestions", mock.Anything, mock.AnythingOfType("[]*domain.Question")).
		Return([]string{"q-new-1", "q-new-2"}, nil).Once()

	fresh := testQuestion("q-new-1")
	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyHard).
		Return(fresh, nil).Once()

	resp, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Hard",
	})

	assert.NoError(t, err)
	assert.Equal(t, "q-new-1", resp.ID)
	questionRepo.AssertExpectations(t)
	patternRepo.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestGetNextQuestion_GeneratedRowsInheritPatternTopic(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyMedium).
		Return(nil, nil).Once()
	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-real", Pattern: "z-score computation"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-real").
		Return(nil, nil).Once()
	generator.On("GenerateQuestions", mock.Anything, "z-score computation", "", domain.DifficultyMedium, selectorBatchSize).
		Return([]*domain.GeneratedQuestion{{QuestionText: "generated", CorrectAnswer: "1"}}, nil).Once()

	// The request names a foreign topic; the stored rows must carry the
	// pattern's topic regardless.
	questionRepo.On("SaveQuestions", mock.Anything, mock.MatchedBy(func(qs []*domain.Question) bool {
		for _, q := range qs {
			if q.TopicID != "topic-real" {
				return false
			}
		}
		return len(qs) == 1
	})).Return([]string{"q-new"}, nil).Once()

	fresh := testQuestion("q-new")
	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyMedium).
		Return(fresh, nil).Once()

	_, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-wrong",
		PatternID:  "pattern-1",
		Difficulty: "Medium",
	})

	assert.NoError(t, err)
	questionRepo.AssertExpectations(t)
	topicRepo.AssertExpectations(t)
}

func TestGetNextQuestion_FallsBackToLatestWhenAllCollide(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyEasy).
		Return(nil, nil).Twice()
	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "confidence intervals"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-1").
		Return(nil, nil).Once()
	generator.On("GenerateQuestions", mock.Anything, "confidence intervals", "", domain.DifficultyEasy, selectorBatchSize).
		Return([]*domain.GeneratedQuestion{{QuestionText: "dup", CorrectAnswer: "1"}}, nil).Once()
	questionRepo.On("SaveQuestions", mock.Anything, mock.AnythingOfType("[]*domain.Question")).
		Return([]string{}, nil).Once()

	latest := testQuestion("q-latest")
	questionRepo.On("GetLatestQuestion", mock.Anything, "pattern-1", domain.DifficultyEasy).
		Return(latest, nil).Once()

	resp, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Easy",
	})

	assert.NoError(t, err)
	assert.Equal(t, "q-latest", resp.ID)
	questionRepo.AssertExpectations(t)
}

func TestGetNextQuestion_NothingAvailableReturnsNotFound(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyEasy).
		Return(nil, nil).Twice()
	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "confidence intervals"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-1").
		Return(nil, nil).Once()
	generator.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, domain.DifficultyEasy, selectorBatchSize).
		Return([]*domain.GeneratedQuestion{{QuestionText: "dup", CorrectAnswer: "1"}}, nil).Once()
	questionRepo.On("SaveQuestions", mock.Anything, mock.Anything).
		Return([]string{}, nil).Once()
	questionRepo.On("GetLatestQuestion", mock.Anything, "pattern-1", domain.DifficultyEasy).
		Return(nil, nil).Once()

	_, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Easy",
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}

func TestGetNextQuestion_InvalidDifficulty(t *testing.T) {
	_, _, _, _, svc := newQuestionServiceForTest()

	_, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Impossible",
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidDifficulty, domainErr.Code)
}

func TestGetNextQuestion_MalformedGenerationIsFatal(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	questionRepo.On("GetUnattemptedQuestion", mock.Anything, "user-1", "pattern-1", domain.DifficultyMedium).
		Return(nil, nil).Once()
	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "t-tests"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-1").
		Return(nil, nil).Once()
	generator.On("GenerateQuestions", mock.Anything, "t-tests", "", domain.DifficultyMedium, selectorBatchSize).
		Return(nil, domain.NewMalformedLLMResponseError(errors.New("not json"))).Once()

	_, err := svc.GetNextQuestion(context.Background(), &dto.NextQuestionRequest{
		UserID:     "user-1",
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Medium",
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedLLMResponse, domainErr.Code)
	questionRepo.AssertNotCalled(t, "SaveQuestions", mock.Anything, mock.Anything)
}

func TestGenerateQuestions_PreviewDoesNotPersist(t *testing.T) {
	questionRepo, topicRepo, patternRepo, generator, svc := newQuestionServiceForTest()

	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "chi-square tests"}, nil).Once()
	topicRepo.On("GetTopicByID", mock.Anything, "topic-1").
		Return(&domain.Topic{ID: "topic-1", Name: "Hypothesis testing"}, nil).Once()
	generator.On("GenerateQuestions", mock.Anything, "chi-square tests", "", domain.DifficultyMedium, previewBatchSize).
		Return([]*domain.GeneratedQuestion{
			{QuestionText: "preview one", CorrectAnswer: "0.05"},
			{QuestionText: "preview two", CorrectAnswer: "3.84"},
		}, nil).Once()

	resp, err := svc.GenerateQuestions(context.Background(), &dto.GenerateQuestionsRequest{
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Medium",
	})

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "preview one", resp[0].QuestionText)
	questionRepo.AssertNotCalled(t, "SaveQuestions", mock.Anything, mock.Anything)
	generator.AssertExpectations(t)
}

func TestSaveQuestions_SanitizesAndDropsBlank(t *testing.T) {
	questionRepo, _, patternRepo, _, svc := newQuestionServiceForTest()

	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-1", Pattern: "mean computation"}, nil).Once()
	questionRepo.On("SaveQuestions", mock.Anything, mock.MatchedBy(func(qs []*domain.Question) bool {
		return len(qs) == 1 &&
			qs[0].QuestionText == "What is the mean of 1, 2, 3?" &&
			qs[0].CorrectAnswer == "2"
	})).Return([]string{"q-1"}, nil).Once()

	resp, err := svc.SaveQuestions(context.Background(), &dto.SaveQuestionsRequest{
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Easy",
		Questions: []dto.GeneratedQuestionPayload{
			{QuestionText: "What is the mean of 1, 2, 3?", CorrectAnswer: "2\x00"},
			{QuestionText: "   "},
		},
	})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Inserted)
	questionRepo.AssertExpectations(t)
}

func TestSaveQuestions_StampsPatternTopicOnMismatchedRequest(t *testing.T) {
	questionRepo, _, patternRepo, _, svc := newQuestionServiceForTest()

	patternRepo.On("GetPatternByID", mock.Anything, "pattern-1").
		Return(&domain.Pattern{ID: "pattern-1", TopicID: "topic-real", Pattern: "mean computation"}, nil).Once()
	questionRepo.On("SaveQuestions", mock.Anything, mock.MatchedBy(func(qs []*domain.Question) bool {
		for _, q := range qs {
			if q.TopicID != "topic-real" {
				return false
			}
		}
		return len(qs) == 1
	})).Return([]string{"q-1"}, nil).Once()

	resp, err := svc.SaveQuestions(context.Background(), &dto.SaveQuestionsRequest{
		TopicID:    "topic-wrong",
		PatternID:  "pattern-1",
		Difficulty: "Easy",
		Questions: []dto.GeneratedQuestionPayload{
			{QuestionText: "What is the median of 1, 2, 9?", CorrectAnswer: "2"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Inserted)
	questionRepo.AssertExpectations(t)
}

func TestSaveQuestions_UnknownPattern(t *testing.T) {
	questionRepo, _, patternRepo, _, svc := newQuestionServiceForTest()

	patternRepo.On("GetPatternByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := svc.SaveQuestions(context.Background(), &dto.SaveQuestionsRequest{
		TopicID:    "topic-1",
		PatternID:  "missing",
		Difficulty: "Easy",
		Questions: []dto.GeneratedQuestionPayload{
			{QuestionText: "anything", CorrectAnswer: "1"},
		},
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodePatternNotFound, domainErr.Code)
	questionRepo.AssertNotCalled(t, "SaveQuestions", mock.Anything, mock.Anything)
}

func TestSaveQuestions_RejectsEmptyBatch(t *testing.T) {
	_, _, _, _, svc := newQuestionServiceForTest()

	_, err := svc.SaveQuestions(context.Background(), &dto.SaveQuestionsRequest{
		TopicID:    "topic-1",
		PatternID:  "pattern-1",
		Difficulty: "Easy",
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestGetQuestionByID_NotFound(t *testing.T) {
	questionRepo, _, _, _, svc := newQuestionServiceForTest()

	questionRepo.On("GetQuestionByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := svc.GetQuestionByID(context.Background(), "missing")

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}

func TestGetQuestionSummaries(t *testing.T) {
	questionRepo, _, _, _, svc := newQuestionServiceForTest()

	questionRepo.On("GetQuestionSummaries", mock.Anything, "pattern-1").
		Return([]*domain.QuestionSummary{
			{ID: "q-1", QuestionText: "first"},
			{ID: "q-2", QuestionText: "second"},
		}, nil).Once()

	resp, err := svc.GetQuestionSummaries(context.Background(), "pattern-1")

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "q-2", resp[1].ID)
}
