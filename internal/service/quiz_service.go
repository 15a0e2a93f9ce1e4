package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo}
}

type QuizFilter struct {
	Category   model.QuizCategory
	Difficulty model.QuizDifficulty
	ClassID    uint
	ActiveOnly bool
	Page       int
	Limit      int
}

func (s *QuizService) List(filter QuizFilter) ([]model.Quiz, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = util.DefaultPageLimit
	}
	return s.QuizRepo.List(filter.Category, filter.Difficulty, filter.ClassID, filter.ActiveOnly, filter.Page, filter.Limit)
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) Create(quiz *model.Quiz) error {
	return s.QuizRepo.Create(quiz)
}

func (s *QuizService) Update(quiz *model.Quiz) error {
	return s.QuizRepo.Update(quiz)
}

func (s *QuizService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}

// Questions returns the quiz's questions in display order. Correct
// answers stay server-side; the model never serializes them.
func (s *QuizService) Questions(quizID uint) ([]model.QuizQuestion, error) {
	if _, err := s.Get(quizID); err != nil {
		return nil, err
	}
	return s.QuizRepo.ListQuestions(quizID)
}

type QuestionInput struct {
	Question      string
	Type          model.QuestionType
	CorrectAnswer string
	Points        int
	Explanation   string
	Order         int
	Options       []string
}

func (s *QuizService) AddQuestion(quizID, createdBy uint, input QuestionInput) (*model.QuizQuestion, error) {
	if _, err := s.Get(quizID); err != nil {
		return nil, err
	}
	if input.Points <= 0 {
		input.Points = 1
	}
	if input.Order <= 0 {
		next, err := s.QuizRepo.NextQuestionOrder(quizID)
		if err != nil {
			return nil, err
		}
		input.Order = next
	}

	question := &model.QuizQuestion{
		QuizID:        quizID,
		Question:      input.Question,
		Type:          input.Type,
		CorrectAnswer: input.CorrectAnswer,
		Points:        input.Points,
		Explanation:   input.Explanation,
		Order:         input.Order,
		CreatedBy:     &createdBy,
	}
	for i, text := range input.Options {
		question.Options = append(question.Options, model.QuizQuestionOption{
			OptionText:  text,
			OptionOrder: i + 1,
		})
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(id uint, input QuestionInput) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if input.Points <= 0 {
		input.Points = 1
	}

	question.Question = input.Question
	question.Type = input.Type
	question.CorrectAnswer = input.CorrectAnswer
	question.Points = input.Points
	question.Explanation = input.Explanation
	if input.Order > 0 {
		question.Order = input.Order
	}
	question.Options = nil
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}

	var options []model.QuizQuestionOption
	for i, text := range input.Options {
		options = append(options, model.QuizQuestionOption{
			OptionText:  text,
			OptionOrder: i + 1,
		})
	}
	if err := s.QuizRepo.ReplaceQuestionOptions(question, options); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(id uint) error {
	if _, err := s.QuizRepo.FindQuestionByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuizRepo.DeleteQuestion(id)
}
