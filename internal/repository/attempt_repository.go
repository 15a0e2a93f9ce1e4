package repository

import (
	"seangkatan_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindInProgress returns the student's open attempt for a quiz, if any.
func (r *AttemptRepository) FindInProgress(quizID, studentID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND student_id = ? AND completed_at IS NULL", quizID, studentID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// UpsertAnswer stores the graded answer, overwriting any earlier
// submission for the same (attempt, question) pair.
func (r *AttemptRepository) UpsertAnswer(answer *model.QuizAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "is_correct", "points", "updated_at"}),
	}).Create(answer).Error
}

func (r *AttemptRepository) Answers(attemptID uint) ([]model.QuizAnswer, error) {
	var answers []model.QuizAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error
	return answers, err
}

// Finalize completes the attempt exactly once. The row is locked for the
// duration of the transaction so concurrent completions serialize; the
// loser of the race sees the stored result and alreadyCompleted=true.
func (r *AttemptRepository) Finalize(attemptID uint, timeSpent int, now time.Time) (*model.QuizAttempt, bool, error) {
	var attempt model.QuizAttempt
	alreadyCompleted := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, attemptID).Error; err != nil {
			return err
		}
		if !attempt.InProgress() {
			alreadyCompleted = true
			return nil
		}

		var total int64
		if err := tx.Model(&model.QuizAnswer{}).
			Where("attempt_id = ?", attemptID).
			Select("COALESCE(SUM(points), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		attempt.Finalize(int(total), timeSpent, now)
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &attempt, alreadyCompleted, nil
}

// CountCompleted counts the student's completed attempts, optionally
// restricted to one quiz category.
func (r *AttemptRepository) CountCompleted(studentID uint, category string) (int64, error) {
	var count int64
	query := r.DB.Model(&model.QuizAttempt{}).
		Where("student_id = ? AND completed_at IS NOT NULL", studentID)
	if category != "" {
		query = query.Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
			Where("quizzes.category = ?", category)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *AttemptRepository) ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var attempts []model.QuizAttempt
	var total int64

	query := r.DB.Model(&model.QuizAttempt{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) ListByQuiz(quizID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var attempts []model.QuizAttempt
	var total int64

	query := r.DB.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}
