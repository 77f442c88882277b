package handler

import (
	"stat-practice/internal/domain"
	"stat-practice/internal/dto"
	"stat-practice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles the student-facing practice endpoints
type StudentHandler struct {
	catalogService  service.CatalogService
	questionService service.QuestionService
	practiceService service.PracticeService
}

// NewStudentHandler creates a new StudentHandler instance
func NewStudentHandler(
	catalogService service.CatalogService,
	questionService service.QuestionService,
	practiceService service.PracticeService,
) *StudentHandler {
	return &StudentHandler{
		catalogService:  catalogService,
		questionService: questionService,
		practiceService: practiceService,
	}
}

// GetTopics godoc
// @Summary List topics
// @Tags student
// @Produce json
// @Success 200 {array} dto.TopicResponse
// @Router /api/student/topics [get]
func (h *StudentHandler) GetTopics(c *fiber.Ctx) error {
	topics, err := h.catalogService.GetTopics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(topics)
}

// GetPatterns godoc
// @Summary List patterns for a topic
// @Tags student
// @Produce json
// @Param topicID path string true "Topic ID"
// @Success 200 {array} dto.PatternResponse
// @Router /api/student/topics/{topicID}/patterns [get]
func (h *StudentHandler) GetPatterns(c *fiber.Ctx) error {
	patterns, err := h.catalogService.GetPatterns(c.UserContext(), c.Params("topicID"))
	if err != nil {
		return err
	}
	return c.JSON(patterns)
}

// GetQuestionSummaries godoc
// @Summary List question summaries for a pattern
// @Tags student
// @Produce json
// @Param patternID path string true "Pattern ID"
// @Success 200 {array} dto.QuestionSummaryResponse
// @Router /api/student/patterns/{patternID}/questions [get]
func (h *StudentHandler) GetQuestionSummaries(c *fiber.Ctx) error {
	summaries, err := h.questionService.GetQuestionSummaries(c.UserContext(), c.Params("patternID"))
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}

// GetQuestion godoc
// @Summary Get one question by id
// @Tags student
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/student/questions/{id} [get]
func (h *StudentHandler) GetQuestion(c *fiber.Ctx) error {
	question, err := h.questionService.GetQuestionByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// GetNextQuestion godoc
// @Summary Get the next unattempted question, generating a batch when needed
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.NextQuestionRequest true "Selection scope"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/student/questions/next [post]
func (h *StudentHandler) GetNextQuestion(c *fiber.Ctx) error {
	var req dto.NextQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	question, err := h.questionService.GetNextQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// SubmitAnswer godoc
// @Summary Grade a free-text answer and record the attempt
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Submission"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/student/attempts [post]
func (h *StudentHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.practiceService.SubmitAnswer(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// UpdateRemark godoc
// @Summary Amend the student remark on an attempt
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.UpdateRemarkRequest true "Remark update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/student/attempts/remark [post]
func (h *StudentHandler) UpdateRemark(c *fiber.Ctx) error {
	var req dto.UpdateRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.practiceService.UpdateRemark(c.UserContext(), &req); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
