package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/auth"
	"github.com/portalpnd/simulado-api/internal/controller"
	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/service"
)

// AttemptController exposes the exam-attempt lifecycle to the portal UI. The
// caller identity is taken from the bearer-token middleware and forwarded into
// the service untouched.
type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// StartAttempt godoc
// @Summary Start a new exam attempt
// @Description Creates an in-progress attempt owned by the caller, counters at zero.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.AttemptStartedDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}

	started, err := c.attemptService.StartAttempt(caller)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, started)
}

// SubmitAnswer godoc
// @Summary Submit an answer for the current question
// @Description Judges the selected letter against the answer key, records the answer and updates the attempt counters. Each question can be answered once per attempt.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param answer body dto.SubmitAnswerDTO true "Question and selected letter (A-D)"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed body or letter outside A-D"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt finished or question already answered"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts/{attempt_id}/answers [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}
	attemptID, ok := controller.ParseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.RecordAnswer(caller, attemptID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// FinishAttempt godoc
// @Summary Finish an attempt
// @Description Marks the attempt as finished and returns its summary. Finishing an already finished attempt is a no-op that returns the same summary.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts/{attempt_id}/finish [post]
func (c *AttemptController) FinishAttempt(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}
	attemptID, ok := controller.ParseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	summary, err := c.attemptService.FinishAttempt(caller, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// GetSummary godoc
// @Summary Get the summary of an attempt
// @Description Returns the counters and derived percentage. An attempt with no recorded answers has no percentage field.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts/{attempt_id}/summary [get]
func (c *AttemptController) GetSummary(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}
	attemptID, ok := controller.ParseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	summary, err := c.attemptService.GetSummary(caller, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// ListAnswers godoc
// @Summary Review the answers of an attempt
// @Description Lists each judged answer with the captured correct letter, in submission order.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {array} dto.AnswerReviewDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts/{attempt_id}/answers [get]
func (c *AttemptController) ListAnswers(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}
	attemptID, ok := controller.ParseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	answers, err := c.attemptService.ListAnswers(caller, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// ListHistory godoc
// @Summary List the caller's past attempts
// @Description Attempts ordered by start time, most recent first, each with its derived percentage.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {array} dto.AttemptHistoryItemDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination values"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /attempts [get]
func (c *AttemptController) ListHistory(ctx *gin.Context) {
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.ErrUnauthenticated)
		return
	}

	var query dto.HistoryQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid pagination", Details: []string{err.Error()}})
		return
	}

	history, err := c.attemptService.ListHistory(caller, query.Page, query.PageSize)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}
