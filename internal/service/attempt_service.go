package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/auth"
	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/model"
	"github.com/portalpnd/simulado-api/internal/repository"
	"github.com/portalpnd/simulado-api/internal/scoring"
)

// AttemptService is the boundary the HTTP layer drives for the whole exam
// lifecycle: start, answer, finish, summary, review, history. Every mutation
// is scoped to the attempt owner (admins may act on any attempt).
type AttemptService interface {
	StartAttempt(caller auth.Identity) (*dto.AttemptStartedDTO, error)
	RecordAnswer(caller auth.Identity, attemptID uint, req dto.SubmitAnswerDTO) (*dto.AnswerResultDTO, error)
	FinishAttempt(caller auth.Identity, attemptID uint) (*dto.AttemptSummaryDTO, error)
	GetSummary(caller auth.Identity, attemptID uint) (*dto.AttemptSummaryDTO, error)
	ListAnswers(caller auth.Identity, attemptID uint) ([]dto.AnswerReviewDTO, error)
	ListHistory(caller auth.Identity, page, pageSize int) ([]dto.AttemptHistoryItemDTO, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	now          func() time.Time
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

func (s *attemptService) StartAttempt(caller auth.Identity) (*dto.AttemptStartedDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}

	attempt := model.Attempt{
		UserID:    caller.UserID,
		StartedAt: s.now(),
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("userID", caller.UserID.String()).Msg("StartAttempt: failed to create attempt")
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Str("userID", caller.UserID.String()).Msg("Attempt started")
	return &dto.AttemptStartedDTO{
		ID:        attempt.ID,
		UserID:    attempt.UserID,
		StartedAt: attempt.StartedAt,
	}, nil
}

func (s *attemptService) RecordAnswer(caller auth.Identity, attemptID uint, req dto.SubmitAnswerDTO) (*dto.AnswerResultDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}

	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAct(attempt.UserID) {
		return nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, apperr.ErrForbidden)
	}
	if attempt.Finished() {
		return nil, fmt.Errorf("attempt %d is finished: %w", attemptID, apperr.ErrConflict)
	}

	selected := scoring.NormalizeLetter(req.SelectedLetter)
	if req.QuestionID == 0 || !scoring.ValidLetter(selected) {
		return nil, fmt.Errorf("selected_letter must be one of A, B, C, D: %w", apperr.ErrInvalidInput)
	}

	// Ground truth comes from the stored answer key; a missing question fails
	// here with nothing written.
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		return nil, err
	}

	isCorrect := scoring.Judge(selected, question.CorrectLetter)
	answer := model.Answer{
		AttemptID:      attemptID,
		QuestionID:     question.ID,
		SelectedLetter: selected,
		CorrectLetter:  question.CorrectLetter,
		IsCorrect:      isCorrect,
	}
	if err := s.attemptRepo.AppendAnswer(&answer); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", question.ID).Msg("RecordAnswer: append failed")
		return nil, err
	}

	log.Info().
		Uint("attemptID", attemptID).
		Uint("questionID", question.ID).
		Bool("isCorrect", isCorrect).
		Msg("Answer recorded")
	return &dto.AnswerResultDTO{
		QuestionID:     question.ID,
		SelectedLetter: selected,
		CorrectLetter:  question.CorrectLetter,
		IsCorrect:      isCorrect,
	}, nil
}

func (s *attemptService) FinishAttempt(caller auth.Identity, attemptID uint) (*dto.AttemptSummaryDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}

	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAct(attempt.UserID) {
		return nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, apperr.ErrForbidden)
	}

	if !attempt.Finished() {
		updated, err := s.attemptRepo.Finish(attemptID, s.now())
		if err != nil {
			log.Error().Err(err).Uint("attemptID", attemptID).Msg("FinishAttempt: update failed")
			return nil, err
		}
		if updated {
			log.Info().Uint("attemptID", attemptID).Msg("Attempt finished")
		}
		// Either way the row is terminal now; reload for the summary.
		attempt, err = s.attemptRepo.FindByID(attemptID)
		if err != nil {
			return nil, err
		}
	}

	return summarize(attempt), nil
}

func (s *attemptService) GetSummary(caller auth.Identity, attemptID uint) (*dto.AttemptSummaryDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}

	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAct(attempt.UserID) {
		return nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, apperr.ErrForbidden)
	}
	return summarize(attempt), nil
}

func (s *attemptService) ListAnswers(caller auth.Identity, attemptID uint) ([]dto.AnswerReviewDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}

	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAct(attempt.UserID) {
		return nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, apperr.ErrForbidden)
	}

	answers, err := s.answerRepo.ListByAttempt(attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("ListAnswers: repository error")
		return nil, err
	}

	reviews := make([]dto.AnswerReviewDTO, 0, len(answers))
	for _, a := range answers {
		reviews = append(reviews, dto.AnswerReviewDTO{
			QuestionID:     a.QuestionID,
			Prompt:         a.Question.Prompt,
			SelectedLetter: a.SelectedLetter,
			CorrectLetter:  a.CorrectLetter,
			IsCorrect:      a.IsCorrect,
		})
	}
	return reviews, nil
}

func (s *attemptService) ListHistory(caller auth.Identity, page, pageSize int) ([]dto.AttemptHistoryItemDTO, error) {
	if !caller.Valid() {
		return nil, apperr.ErrUnauthenticated
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	attempts, err := s.attemptRepo.FindAllByUser(caller.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Error().Err(err).Str("userID", caller.UserID.String()).Msg("ListHistory: repository error")
		return nil, err
	}

	items := make([]dto.AttemptHistoryItemDTO, 0, len(attempts))
	for _, a := range attempts {
		sum := scoring.Summarize(a.CorrectAnswers, a.TotalQuestions)
		items = append(items, dto.AttemptHistoryItemDTO{
			ID:             a.ID,
			StartedAt:      a.StartedAt,
			FinishedAt:     a.FinishedAt,
			TotalQuestions: a.TotalQuestions,
			CorrectAnswers: a.CorrectAnswers,
			Percentage:     sum.Percentage,
		})
	}
	return items, nil
}

// summarize derives the score view from the stored counters. The percentage
// is recomputed on every call, never persisted.
func summarize(attempt *model.Attempt) *dto.AttemptSummaryDTO {
	sum := scoring.Summarize(attempt.CorrectAnswers, attempt.TotalQuestions)
	return &dto.AttemptSummaryDTO{
		ID:             attempt.ID,
		TotalQuestions: sum.TotalCount,
		CorrectAnswers: sum.CorrectCount,
		Percentage:     sum.Percentage,
		Finished:       attempt.Finished(),
		StartedAt:      attempt.StartedAt,
		FinishedAt:     attempt.FinishedAt,
	}
}
