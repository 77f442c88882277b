package handler

import (
	"stat-practice/internal/domain"
	"stat-practice/internal/dto"
	"stat-practice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InstructorHandler handles the instructor curation endpoints
type InstructorHandler struct {
	catalogService  service.CatalogService
	questionService service.QuestionService
}

// NewInstructorHandler creates a new InstructorHandler instance
func NewInstructorHandler(
	catalogService service.CatalogService,
	questionService service.QuestionService,
) *InstructorHandler {
	return &InstructorHandler{
		catalogService:  catalogService,
		questionService: questionService,
	}
}

// SuggestPatterns godoc
// @Summary Suggest novel pattern templates for a topic
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body dto.SuggestPatternsRequest true "Topic scope"
// @Success 200 {object} dto.SuggestPatternsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/instructor/patterns/suggest [post]
func (h *InstructorHandler) SuggestPatterns(c *fiber.Ctx) error {
	var req dto.SuggestPatternsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.catalogService.SuggestPatterns(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SavePatterns godoc
// @Summary Persist selected pattern texts for a topic
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body dto.SavePatternsRequest true "Patterns to save"
// @Success 200 {object} dto.SavePatternsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/instructor/patterns [post]
func (h *InstructorHandler) SavePatterns(c *fiber.Ctx) error {
	var req dto.SavePatternsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.catalogService.SavePatterns(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuestions godoc
// @Summary Generate a preview batch of questions without persisting
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Generation scope"
// @Success 200 {array} dto.GeneratedQuestionPayload
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/instructor/questions/generate [post]
func (h *InstructorHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.questionService.GenerateQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveQuestions godoc
// @Summary Persist curated questions
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body dto.SaveQuestionsRequest true "Questions to save"
// @Success 200 {object} dto.SaveQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/instructor/questions [post]
func (h *InstructorHandler) SaveQuestions(c *fiber.Ctx) error {
	var req dto.SaveQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.questionService.SaveQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateTopicApproach godoc
// @Summary Overwrite the preferred-approach note on a topic
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Param request body dto.UpdateApproachRequest true "Approach note"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/instructor/topics/{id}/approach [put]
func (h *InstructorHandler) UpdateTopicApproach(c *fiber.Ctx) error {
	var req dto.UpdateApproachRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.catalogService.UpdateTopicApproach(c.UserContext(), c.Params("id"), req.Approach); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdatePatternApproach godoc
// @Summary Overwrite the preferred-approach note on a pattern
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Pattern ID"
// @Param request body dto.UpdateApproachRequest true "Approach note"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/instructor/patterns/{id}/approach [put]
func (h *InstructorHandler) UpdatePatternApproach(c *fiber.Ctx) error {
	var req dto.UpdateApproachRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.catalogService.UpdatePatternApproach(c.UserContext(), c.Params("id"), req.Approach); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
