package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/util"
	"seangkatan_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptStore is the slice of the attempt repository the service needs.
type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	FindByID(id uint) (*model.QuizAttempt, error)
	FindInProgress(quizID, studentID uint) (*model.QuizAttempt, error)
	UpsertAnswer(answer *model.QuizAnswer) error
	Answers(attemptID uint) ([]model.QuizAnswer, error)
	Finalize(attemptID uint, timeSpent int, now time.Time) (*model.QuizAttempt, bool, error)
	ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error)
}

// AttemptQuizStore resolves quizzes and questions for attempt flows.
type AttemptQuizStore interface {
	FindByID(id uint) (*model.Quiz, error)
	FindQuestionByID(id uint) (*model.QuizQuestion, error)
	ListQuestions(quizID uint) ([]model.QuizQuestion, error)
	MaxScore(quizID uint) (int, error)
}

type AttemptService struct {
	Attempts AttemptStore
	Quizzes  AttemptQuizStore
	Badges   *BadgeService
}

func NewAttemptService(attempts AttemptStore, quizzes AttemptQuizStore, badges *BadgeService) *AttemptService {
	return &AttemptService{
		Attempts: attempts,
		Quizzes:  quizzes,
		Badges:   badges,
	}
}

// StartResult carries everything a student needs to take the quiz:
// the open attempt plus the quiz and its questions. Correct answers
// never serialize off the question model.
type StartResult struct {
	Attempt   *model.QuizAttempt
	Quiz      *model.Quiz
	Questions []model.QuizQuestion
}

// Start opens a new attempt. The quiz's max score is computed once here
// and frozen on the attempt; question edits made later never affect it.
// A student may hold at most one open attempt per quiz.
func (s *AttemptService) Start(quizID, studentID uint) (*StartResult, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizNotFound
	}

	if _, err := s.Attempts.FindInProgress(quizID, studentID); err == nil {
		return nil, util.ErrAttemptInProgress
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	maxScore, err := s.Quizzes.MaxScore(quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Quizzes.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		StudentID: studentID,
		MaxScore:  maxScore,
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}
	return &StartResult{Attempt: attempt, Quiz: quiz, Questions: questions}, nil
}

// SubmitAnswer grades and stores one answer. Resubmitting the same
// question overwrites the earlier answer. The grading verdict is
// returned immediately.
func (s *AttemptService) SubmitAnswer(attemptID, studentID, questionID uint, answer string) (*model.QuizAnswer, error) {
	attempt, err := s.findOwnedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if !attempt.InProgress() {
		return nil, util.ErrAttemptCompleted
	}

	question, err := s.Quizzes.FindQuestionByID(questionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if question.QuizID != attempt.QuizID {
		return nil, util.ErrQuestionNotFound
	}

	isCorrect, points := ScoreAnswer(question, answer)
	record := &model.QuizAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  isCorrect,
		Points:     points,
	}
	if err := s.Attempts.UpsertAnswer(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Complete finalizes the attempt. Completing an already-completed
// attempt is a no-op that returns the stored result. Badge evaluation
// runs after a successful first completion; its failure never fails the
// completion itself.
func (s *AttemptService) Complete(attemptID, studentID uint, timeSpent int) (*model.QuizAttempt, []model.Badge, error) {
	if _, err := s.findOwnedAttempt(attemptID, studentID); err != nil {
		return nil, nil, err
	}

	attempt, alreadyCompleted, err := s.Attempts.Finalize(attemptID, timeSpent, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if alreadyCompleted {
		return attempt, nil, nil
	}

	var newBadges []model.Badge
	if s.Badges != nil {
		quiz, err := s.Quizzes.FindByID(attempt.QuizID)
		if err != nil {
			logger.Log.Warn("Badge evaluation skipped, quiz lookup failed",
				zap.Uint("attempt_id", attempt.ID), zap.Error(err))
			return attempt, nil, nil
		}
		newBadges, err = s.Badges.EvaluateForAttempt(attempt, quiz)
		if err != nil {
			logger.Log.Warn("Badge evaluation failed",
				zap.Uint("attempt_id", attempt.ID), zap.Error(err))
		}
	}
	return attempt, newBadges, nil
}

// Results returns the attempt with its stored answers.
func (s *AttemptService) Results(attemptID, requesterID uint, requesterStaff bool) (*model.QuizAttempt, []model.QuizAnswer, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if attempt.StudentID != requesterID && !requesterStaff {
		return nil, nil, util.ErrPermissionDenied
	}

	answers, err := s.Attempts.Answers(attemptID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, answers, nil
}

func (s *AttemptService) History(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = util.DefaultPageLimit
	}
	return s.Attempts.ListByStudent(studentID, page, limit)
}

func (s *AttemptService) findOwnedAttempt(attemptID, studentID uint) (*model.QuizAttempt, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}
