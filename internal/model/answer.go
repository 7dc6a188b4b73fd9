package model

import (
	"time"
)

// Answer is one recorded response to one question within an attempt.
// CorrectLetter is captured from the Question at judgment time so the verdict
// stays historically accurate even if the question is edited later. The
// composite unique index guards against double-counting a retried submission.
type Answer struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	AttemptID      uint      `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedLetter string    `json:"selected_letter" gorm:"type:varchar(1);not null"`
	CorrectLetter  string    `json:"correct_letter" gorm:"type:varchar(1);not null"`
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}
