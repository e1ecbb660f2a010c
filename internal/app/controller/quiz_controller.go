package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"gorm.io/gorm"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{
		quizService: quizService,
	}
}

type QuizRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

// Submit scores a quiz run and returns the style verdict
// POST /api/v1/quiz
func (ctrl *QuizController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Answers are required")
		return
	}

	verdict, err := ctrl.quizService.Score(sessionID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrNoQuizAnswers) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "No valid answers given")
			return
		}
		log.Error("Failed to score quiz", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to score quiz")
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// Latest returns the session's most recent quiz result
// GET /api/v1/quiz/result
func (ctrl *QuizController) Latest(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	result, err := ctrl.quizService.LatestResult(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "No quiz result yet")
			return
		}
		apperrors.InternalError(c, "Failed to fetch quiz result")
		return
	}

	c.JSON(http.StatusOK, result)
}
