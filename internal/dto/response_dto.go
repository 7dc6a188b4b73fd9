package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStartedDTO acknowledges a freshly created attempt.
type AttemptStartedDTO struct {
	ID        uint      `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

// AnswerResultDTO is the immediate feedback for one submitted answer.
type AnswerResultDTO struct {
	QuestionID     uint   `json:"question_id"`
	SelectedLetter string `json:"selected_letter"`
	CorrectLetter  string `json:"correct_letter"`
	IsCorrect      bool   `json:"is_correct"`
}

// AttemptSummaryDTO is the derived score of one attempt. Percentage is omitted
// when the attempt has no recorded answers.
type AttemptSummaryDTO struct {
	ID             uint       `json:"id"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	Percentage     *float64   `json:"percentage,omitempty"`
	Finished       bool       `json:"finished"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// AttemptHistoryItemDTO is one row of a user's attempt history, most recent
// attempt first.
type AttemptHistoryItemDTO struct {
	ID             uint       `json:"id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	Percentage     *float64   `json:"percentage,omitempty"`
}

// QuestionPublicDTO is a question as shown to an exam taker. The correct
// letter never appears here.
type QuestionPublicDTO struct {
	ID      uint   `json:"id"`
	Prompt  string `json:"prompt"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// AnswerReviewDTO is one judged answer in the post-exam review of an attempt.
type AnswerReviewDTO struct {
	QuestionID     uint   `json:"question_id"`
	Prompt         string `json:"prompt"`
	SelectedLetter string `json:"selected_letter"`
	CorrectLetter  string `json:"correct_letter"`
	IsCorrect      bool   `json:"is_correct"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
