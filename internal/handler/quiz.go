package handler

import (
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/service"
	"wikiquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate or fetch a quiz for an article URL
// @Description Returns the stored quiz for the URL; generates a fresh one on a miss or when force_refresh is true
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL and refresh flag"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req.URL); len(errs) > 0 {
		return errs // Handled by the ErrorHandler middleware
	}

	response, err := h.service.GenerateQuiz(c.UserContext(), req.URL, req.ForceRefresh)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("url", req.URL),
			zap.Bool("force_refresh", req.ForceRefresh),
		)
		return err
	}

	return c.JSON(response)
}

// GetHistory godoc
// @Summary List all stored quizzes
// @Description Returns every stored quiz with its questions and related topics
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	responses, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return err
	}

	return c.JSON(responses)
}

// GetQuizByID godoc
// @Summary Fetch a stored quiz by identity
// @Description Returns one stored quiz, or 404 when the identity is unknown
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuizByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateQuizID(id); len(errs) > 0 {
		return errs
	}

	response, err := h.service.GetQuizByID(c.UserContext(), id)
	if err != nil {
		logger.Get().Warn("Failed to get quiz by ID",
			zap.Error(err),
			zap.String("quiz_id", id),
		)
		return err
	}

	return c.JSON(response)
}
