package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/model"
	"github.com/portalpnd/simulado-api/internal/repository"
	"github.com/portalpnd/simulado-api/internal/scoring"
)

// QuestionService serves the question pool. Exam takers get the sanitized
// view; the answer key only ever leaves through the admin methods.
type QuestionService interface {
	ListPublic(page, pageSize int) ([]dto.QuestionPublicDTO, error)

	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	GetQuestion(id uint) (*dto.QuestionAdminDTO, error)
	ListQuestions(page, pageSize int) ([]dto.QuestionAdminDTO, error)
	UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionAdminDTO, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) ListPublic(page, pageSize int) ([]dto.QuestionPublicDTO, error) {
	questions, err := s.list(page, pageSize)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.QuestionPublicDTO, 0, len(questions))
	for _, q := range questions {
		var item dto.QuestionPublicDTO
		if err := copier.Copy(&item, &q); err != nil {
			return nil, fmt.Errorf("preparing question list: %w", err)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	question := model.Question{
		Prompt:        req.Prompt,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectLetter: scoring.NormalizeLetter(req.CorrectLetter),
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: repository error")
		return nil, err
	}
	log.Info().Uint("questionID", question.ID).Msg("Question created")
	return adminDTO(&question)
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionAdminDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return adminDTO(question)
}

func (s *questionService) ListQuestions(page, pageSize int) ([]dto.QuestionAdminDTO, error) {
	questions, err := s.list(page, pageSize)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.QuestionAdminDTO, 0, len(questions))
	for _, q := range questions {
		item, err := adminDTO(&q)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *item)
	}
	return dtos, nil
}

func (s *questionService) UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionAdminDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	question.Prompt = req.Prompt
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectLetter = scoring.NormalizeLetter(req.CorrectLetter)
	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: repository error")
		return nil, err
	}
	log.Info().Uint("questionID", id).Msg("Question updated")
	return adminDTO(question)
}

func (s *questionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		log.Warn().Err(err).Uint("questionID", id).Msg("DeleteQuestion: repository error")
		return err
	}
	log.Info().Uint("questionID", id).Msg("Question deleted")
	return nil
}

func (s *questionService) list(page, pageSize int) ([]model.Question, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.questionRepo.FindAll(pageSize, (page-1)*pageSize)
}

func adminDTO(question *model.Question) (*dto.QuestionAdminDTO, error) {
	var resp dto.QuestionAdminDTO
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &resp, nil
}
