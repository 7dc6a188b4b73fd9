package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portalpnd/simulado-api/internal/controller"
	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/service"
)

// QuestionController is the back-office surface for maintaining the question
// pool. All routes sit behind the admin middleware.
type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Description Adds a question with its four options and the correct letter.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateDTO true "Question payload"
// @Success 201 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed body or letter outside A-D"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.CreateQuestion(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary (Admin) Get a question with its answer key
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionAdminDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /admin/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseUintParam(ctx, "question_id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// ListQuestions godoc
// @Summary (Admin) List questions with answer keys
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {array} dto.QuestionAdminDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var query dto.QuestionListQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid pagination", Details: []string{err.Error()}})
		return
	}

	questions, err := c.questionService.ListQuestions(query.Page, query.PageSize)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Replaces the full question representation. Verdicts already captured on past answers are unaffected.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Question payload"
// @Success 200 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed body or letter outside A-D"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /admin/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseUintParam(ctx, "question_id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.UpdateQuestion(questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Soft-deletes the question. Answers already recorded against it keep their captured verdicts.
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 204 "Deleted"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /admin/questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseUintParam(ctx, "question_id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
