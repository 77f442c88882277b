package service

import (
	"context"
	"errors"
	"strings"

	"stat-practice/internal/domain"
	"stat-practice/internal/dto"
	"stat-practice/internal/logger"

	"go.uber.org/zap"
)

// evaluationFallbackRemark is stored and returned when the evaluator's
// completion could not be parsed. The submission is graded incorrect
// rather than failing the request.
const evaluationFallbackRemark = "AI evaluation failed. Treating answer as incorrect."

// PracticeService defines the interface for grading submissions and
// amending attempt remarks
type PracticeService interface {
	SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	UpdateRemark(ctx context.Context, req *dto.UpdateRemarkRequest) error
}

// practiceService implements PracticeService
type practiceService struct {
	questionRepo domain.QuestionRepository
	attemptRepo  domain.AttemptRepository
	evaluator    domain.AnswerEvaluator
}

// NewPracticeService creates a new instance of practiceService
func NewPracticeService(
	questionRepo domain.QuestionRepository,
	attemptRepo domain.AttemptRepository,
	evaluator domain.AnswerEvaluator,
) PracticeService {
	return &practiceService{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		evaluator:    evaluator,
	}
}

// SubmitAnswer implements PracticeService. The question is loaded before
// any LLM call so an unknown id costs nothing; a malformed evaluator
// completion degrades to the conservative incorrect verdict while a
// transport failure fails the request.
func (s *practiceService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if req.UserID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}
	if req.QuestionID == "" {
		return nil, domain.NewInvalidInputError("question ID is required")
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	questionText := strings.TrimSpace(question.QuestionText)
	correctAnswer := strings.TrimSpace(question.CorrectAnswer)

	evaluation, err := s.evaluator.Evaluate(ctx, questionText, correctAnswer, req.UserAnswer)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeMalformedLLMResponse {
			logger.Get().Warn("Evaluator returned a malformed completion, applying fallback verdict",
				zap.String("questionID", req.QuestionID),
				zap.Error(err))
			evaluation = &domain.Evaluation{
				Correct: false,
				Remark:  evaluationFallbackRemark,
			}
		} else {
			return nil, err
		}
	}

	attempt := &domain.Attempt{
		UserID:         req.UserID,
		TopicID:        question.TopicID,
		PatternID:      question.PatternID,
		QuestionID:     question.ID,
		Difficulty:     difficulty,
		IsCorrect:      evaluation.Correct,
		UserAnswer:     req.UserAnswer,
		StudentRemark:  req.StudentRemark,
		AIRemark:       evaluation.Remark,
		UsedHintStats:  req.UsedHintStats,
		UsedHintPython: req.UsedHintPython,
	}
	if err := s.attemptRepo.SaveAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("Failed to save attempt", err)
	}

	questionResp := dto.QuestionToResponse(question)
	questionResp.QuestionText = questionText
	questionResp.CorrectAnswer = correctAnswer

	return &dto.SubmitAnswerResponse{
		Correct:   evaluation.Correct,
		Remark:    evaluation.Remark,
		AttemptID: attempt.ID,
		Question:  questionResp,
	}, nil
}

// UpdateRemark implements PracticeService. The update is fire-and-forget
// from the caller's view: amending an attempt that no longer exists is
// not an error.
func (s *practiceService) UpdateRemark(ctx context.Context, req *dto.UpdateRemarkRequest) error {
	if req.AttemptID == "" {
		return domain.NewInvalidInputError("attempt ID is required")
	}

	rows, err := s.attemptRepo.UpdateStudentRemark(ctx, req.AttemptID, req.StudentRemark)
	if err != nil {
		return domain.NewInternalError("Failed to update student remark", err)
	}
	if rows == 0 {
		logger.Get().Debug("Remark update matched no attempt", zap.String("attemptID", req.AttemptID))
	}
	return nil
}
