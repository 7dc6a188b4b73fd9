package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portalpnd/simulado-api/internal/controller"
	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/service"
)

// QuestionController serves the sanitized question pool to exam takers.
type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary List exam questions
// @Description Paginated question pool for the exam UI. Correct letters are never included.
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {array} dto.QuestionPublicDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination values"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var query dto.QuestionListQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid pagination", Details: []string{err.Error()}})
		return
	}

	questions, err := c.questionService.ListPublic(query.Page, query.PageSize)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
