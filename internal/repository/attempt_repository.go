package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/model"
)

// AttemptRepository owns attempt rows: creation, lookup, the user's history
// and the two state transitions (append an answer, finish).
type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindAllByUser(userID uuid.UUID, limit, offset int) ([]model.Attempt, error)
	// AppendAnswer inserts the answer and bumps the attempt counters in one
	// transaction. Returns ErrConflict when the question was already answered
	// or the attempt reached its terminal state.
	AppendAnswer(answer *model.Answer) error
	// Finish sets finished_at once. The second call reports updated=false and
	// no error, leaving the original timestamp in place.
	Finish(id uint, finishedAt time.Time) (updated bool, err error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("creating attempt: %w: %w", apperr.ErrStorage, err)
	}
	return nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("loading attempt %d: %w: %w", id, apperr.ErrStorage, err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID uuid.UUID, limit, offset int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("listing attempts for user %s: %w: %w", userID, apperr.ErrStorage, err)
	}
	return attempts, nil
}

func (r *attemptRepository) AppendAnswer(answer *model.Answer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Answer
		err := tx.
			Where("attempt_id = ? AND question_id = ?", answer.AttemptID, answer.QuestionID).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("question %d already answered in attempt %d: %w",
				answer.QuestionID, answer.AttemptID, apperr.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %w", apperr.ErrStorage, err)
		}

		if err := tx.Create(answer).Error; err != nil {
			return fmt.Errorf("%w: %w", apperr.ErrStorage, err)
		}

		// Relative increments so concurrent submissions for the same attempt
		// never lose an update. The finished_at predicate closes the race with
		// a concurrent finish.
		updates := map[string]interface{}{
			"total_questions": gorm.Expr("total_questions + 1"),
		}
		if answer.IsCorrect {
			updates["correct_answers"] = gorm.Expr("correct_answers + 1")
		}
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND finished_at IS NULL", answer.AttemptID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("%w: %w", apperr.ErrStorage, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("attempt %d is finished: %w", answer.AttemptID, apperr.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording answer: %w", err)
	}
	return nil
}

func (r *attemptRepository) Finish(id uint, finishedAt time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND finished_at IS NULL", id).
		Update("finished_at", finishedAt)
	if res.Error != nil {
		return false, fmt.Errorf("finishing attempt %d: %w: %w", id, apperr.ErrStorage, res.Error)
	}
	return res.RowsAffected > 0, nil
}
