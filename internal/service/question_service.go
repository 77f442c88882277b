package service

import (
	"context"
	"strings"

	"stat-practice/internal/domain"
	"stat-practice/internal/dto"
	"stat-practice/internal/logger"
	"stat-practice/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// selectorBatchSize is how many questions the next-question flow
	// generates when the user has exhausted the stored bank.
	selectorBatchSize = 5
	// previewBatchSize is how many questions an instructor preview
	// request generates.
	previewBatchSize = 3
)

// QuestionService defines the interface for question selection,
// generation and curation
type QuestionService interface {
	GetNextQuestion(ctx context.Context, req *dto.NextQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestionByID(ctx context.Context, id string) (*dto.QuestionResponse, error)
	GetQuestionSummaries(ctx context.Context, patternID string) ([]dto.QuestionSummaryResponse, error)
	GenerateQuestions(ctx context.Context, req *dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionPayload, error)
	SaveQuestions(ctx context.Context, req *dto.SaveQuestionsRequest) (*dto.SaveQuestionsResponse, error)
}

// questionService implements QuestionService
type questionService struct {
	questionRepo domain.QuestionRepository
	topicRepo    domain.TopicRepository
	patternRepo  domain.PatternRepository
	generator    domain.QuestionGenerator
	genGroup     singleflight.Group
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	questionRepo domain.QuestionRepository,
	topicRepo domain.TopicRepository,
	patternRepo domain.PatternRepository,
	generator domain.QuestionGenerator,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		topicRepo:    topicRepo,
		patternRepo:  patternRepo,
		generator:    generator,
	}
}

// GetNextQuestion implements QuestionService. It returns the oldest
// stored question the user has not attempted yet, generating and
// persisting a fresh batch when the bank is exhausted. Generation for a
// (pattern, difficulty) pair is collapsed through singleflight so
// concurrent exhausted users trigger one LLM call.
func (s *questionService) GetNextQuestion(ctx context.Context, req *dto.NextQuestionRequest) (*dto.QuestionResponse, error) {
	if req.UserID == "" || req.TopicID == "" || req.PatternID == "" {
		return nil, domain.NewInvalidInputError("user ID, topic ID and pattern ID are required")
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetUnattemptedQuestion(ctx, req.UserID, req.PatternID, difficulty)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get unattempted question", err)
	}
	if question != nil {
		resp := dto.QuestionToResponse(question)
		return &resp, nil
	}

	// Bank exhausted for this user. Generate a batch once per
	// (pattern, difficulty) and let every waiter re-query.
	flightKey := req.PatternID + ":" + string(difficulty)
	_, err, _ = s.genGroup.Do(flightKey, func() (interface{}, error) {
		return nil, s.generateAndStore(ctx, req.PatternID, difficulty)
	})
	if err != nil {
		return nil, err
	}

	question, err = s.questionRepo.GetUnattemptedQuestion(ctx, req.UserID, req.PatternID, difficulty)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get unattempted question", err)
	}
	if question == nil {
		// Every insert collided with an existing row the user has already
		// seen. Serve the newest question rather than nothing.
		question, err = s.questionRepo.GetLatestQuestion(ctx, req.PatternID, difficulty)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get latest question", err)
		}
	}
	if question == nil {
		return nil, domain.NewError(domain.CodeQuestionNotFound, "No question available for this pattern and difficulty", nil)
	}

	resp := dto.QuestionToResponse(question)
	return &resp, nil
}

// generateAndStore runs one LLM generation batch for the selector and
// persists it with silent duplicate-skip. The stored questions inherit
// the pattern's topic so a question never points at a topic its pattern
// does not belong to.
func (s *questionService) generateAndStore(ctx context.Context, patternID string, difficulty domain.Difficulty) error {
	pattern, err := s.patternRepo.GetPatternByID(ctx, patternID)
	if err != nil {
		return domain.NewInternalError("Failed to get pattern", err)
	}
	if pattern == nil {
		return domain.NewError(domain.CodePatternNotFound, "Pattern not found with ID: "+patternID, nil)
	}

	approach := s.combinedApproach(ctx, pattern)

	generated, err := s.generator.GenerateQuestions(ctx, pattern.Pattern, approach, difficulty, selectorBatchSize)
	if err != nil {
		return err
	}

	questions := make([]*domain.Question, 0, len(generated))
	for _, g := range generated {
		questions = append(questions, &domain.Question{
			TopicID:        pattern.TopicID,
			PatternID:      patternID,
			Difficulty:     difficulty,
			QuestionText:   g.QuestionText,
			CorrectAnswer:  g.CorrectAnswer,
			HintStats:      g.HintStats,
			HintPython:     g.HintPython,
			SolutionStats:  g.SolutionStats,
			SolutionPython: g.SolutionPython,
			Solution:       g.Solution,
		})
	}

	inserted, err := s.questionRepo.SaveQuestions(ctx, questions)
	if err != nil {
		return domain.NewInternalError("Failed to save generated questions", err)
	}

	logger.Get().Info("Generated question batch",
		zap.String("patternID", patternID),
		zap.String("difficulty", string(difficulty)),
		zap.Int("generated", len(generated)),
		zap.Int("inserted", len(inserted)))
	return nil
}

// combinedApproach loads the preferred-approach notes of the pattern
// and its owning topic. Lookup failures degrade to empty guidance;
// generation must not fail because an advisory note could not be read.
func (s *questionService) combinedApproach(ctx context.Context, pattern *domain.Pattern) string {
	var topicApproach string
	topic, err := s.topicRepo.GetTopicByID(ctx, pattern.TopicID)
	if err != nil {
		logger.Get().Warn("Failed to load topic for approach guidance", zap.String("topicID", pattern.TopicID), zap.Error(err))
	} else if topic != nil {
		topicApproach = topic.PreferredApproach
	}
	return domain.CombineApproaches(topicApproach, pattern.PreferredApproach)
}

// GetQuestionByID implements QuestionService
func (s *questionService) GetQuestionByID(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	if id == "" {
		return nil, domain.NewInvalidInputError("question ID is required")
	}
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	resp := dto.QuestionToResponse(question)
	return &resp, nil
}

// GetQuestionSummaries implements QuestionService
func (s *questionService) GetQuestionSummaries(ctx context.Context, patternID string) ([]dto.QuestionSummaryResponse, error) {
	if patternID == "" {
		return nil, domain.NewInvalidInputError("pattern ID is required")
	}
	summaries, err := s.questionRepo.GetQuestionSummaries(ctx, patternID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question summaries", err)
	}
	resp := make([]dto.QuestionSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		resp = append(resp, dto.SummaryToResponse(sum))
	}
	return resp, nil
}

// GenerateQuestions implements QuestionService. This is the instructor
// preview: a small batch is generated and returned without persisting
// anything.
func (s *questionService) GenerateQuestions(ctx context.Context, req *dto.GenerateQuestionsRequest) ([]dto.GeneratedQuestionPayload, error) {
	if req.TopicID == "" || req.PatternID == "" {
		return nil, domain.NewInvalidInputError("topic ID and pattern ID are required")
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	pattern, err := s.patternRepo.GetPatternByID(ctx, req.PatternID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get pattern", err)
	}
	if pattern == nil {
		return nil, domain.NewError(domain.CodePatternNotFound, "Pattern not found with ID: "+req.PatternID, nil)
	}

	approach := s.combinedApproach(ctx, pattern)

	generated, err := s.generator.GenerateQuestions(ctx, pattern.Pattern, approach, difficulty, previewBatchSize)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.GeneratedQuestionPayload, 0, len(generated))
	for _, g := range generated {
		resp = append(resp, dto.GeneratedQuestionPayload{
			QuestionText:   g.QuestionText,
			CorrectAnswer:  g.CorrectAnswer,
			HintStats:      g.HintStats,
			HintPython:     g.HintPython,
			SolutionStats:  g.SolutionStats,
			SolutionPython: g.SolutionPython,
			Solution:       g.Solution,
		})
	}
	return resp, nil
}

// SaveQuestions implements QuestionService. Curated questions are
// sanitized field by field before insert; duplicates skip silently on
// the (topic_id, pattern_id, question_text) constraint. Rows are
// stamped with the pattern's topic, never the request's, so the
// question-to-topic link cannot drift from the pattern's.
func (s *questionService) SaveQuestions(ctx context.Context, req *dto.SaveQuestionsRequest) (*dto.SaveQuestionsResponse, error) {
	if req.TopicID == "" || req.PatternID == "" {
		return nil, domain.NewInvalidInputError("topic ID and pattern ID are required")
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	if len(req.Questions) == 0 {
		return nil, domain.NewInvalidInputError("no questions to save")
	}

	pattern, err := s.patternRepo.GetPatternByID(ctx, req.PatternID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get pattern", err)
	}
	if pattern == nil {
		return nil, domain.NewError(domain.CodePatternNotFound, "Pattern not found with ID: "+req.PatternID, nil)
	}

	questions := make([]*domain.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			continue
		}
		questions = append(questions, &domain.Question{
			TopicID:        pattern.TopicID,
			PatternID:      req.PatternID,
			Difficulty:     difficulty,
			QuestionText:   util.CleanText(q.QuestionText),
			CorrectAnswer:  util.CleanText(q.CorrectAnswer),
			HintStats:      util.CleanText(q.HintStats),
			HintPython:     util.CleanText(q.HintPython),
			SolutionStats:  util.CleanText(q.SolutionStats),
			SolutionPython: util.CleanText(q.SolutionPython),
			Solution:       util.CleanText(q.Solution),
		})
	}
	if len(questions) == 0 {
		return nil, domain.NewInvalidInputError("no non-empty questions to save")
	}

	inserted, err := s.questionRepo.SaveQuestions(ctx, questions)
	if err != nil {
		if _, ok := err.(*domain.DomainError); ok {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to save questions", err)
	}

	logger.Get().Info("Saved curated questions",
		zap.String("patternID", req.PatternID),
		zap.Int("requested", len(questions)),
		zap.Int("inserted", len(inserted)))

	return &dto.SaveQuestionsResponse{Success: true, Inserted: len(inserted)}, nil
}
