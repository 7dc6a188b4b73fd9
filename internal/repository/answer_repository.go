package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/model"
)

// AnswerRepository reads back the answers of an attempt for the post-exam
// review. Writes go through AttemptRepository.AppendAnswer so the counter
// update and the insert share one transaction.
type AnswerRepository interface {
	ListByAttempt(attemptID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) ListByAttempt(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("listing answers for attempt %d: %w: %w", attemptID, apperr.ErrStorage, err)
	}
	return answers, nil
}
