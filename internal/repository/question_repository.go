package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/model"
)

// QuestionRepository reads the answer-key ground truth for the attempt flow
// and gives the admin back-office its CRUD surface. The attempt subsystem
// only ever calls FindByID.
type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll(limit, offset int) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	if err := r.db.Create(question).Error; err != nil {
		return fmt.Errorf("creating question: %w: %w", apperr.ErrStorage, err)
	}
	return nil
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("loading question %d: %w: %w", id, apperr.ErrStorage, err)
	}
	return &question, nil
}

func (r *questionRepository) FindAll(limit, offset int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w: %w", apperr.ErrStorage, err)
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	if err := r.db.Save(question).Error; err != nil {
		return fmt.Errorf("updating question %d: %w: %w", question.ID, apperr.ErrStorage, err)
	}
	return nil
}

func (r *questionRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Question{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting question %d: %w: %w", id, apperr.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
