package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one exam-taking session by a user. Counters are maintained with
// relative updates only (total_questions = total_questions + 1); they are never
// written from a previously read value.
type Attempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	StartedAt      time.Time      `json:"started_at" gorm:"not null;index"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
	TotalQuestions int            `json:"total_questions" gorm:"not null;default:0"`
	CorrectAnswers int            `json:"correct_answers" gorm:"not null;default:0"`
	Answers        []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Finished reports whether the attempt has reached its terminal state.
func (a *Attempt) Finished() bool {
	return a.FinishedAt != nil
}
