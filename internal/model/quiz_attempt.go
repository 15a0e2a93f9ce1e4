package model

import (
	"math"
	"time"
)

// QuizAttempt is one student's run through a quiz. MaxScore is frozen at
// start time; later question edits never change it. CompletedAt is nil
// while the attempt is in progress.
//
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID     uint       `gorm:"index:idx_quiz_student;type:bigint unsigned;not null" json:"quiz_id"`
	StudentID  uint       `gorm:"index:idx_quiz_student;type:bigint unsigned;not null" json:"student_id"`
	TotalScore int        `gorm:"default:0" json:"total_score"`
	MaxScore   int        `gorm:"not null" json:"max_score"`
	Percentage float64    `gorm:"type:decimal(5,2);default:0" json:"percentage"`
	TimeSpent  int        `gorm:"default:0" json:"time_spent"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) InProgress() bool {
	return a.CompletedAt == nil
}

// Finalize applies the one-shot completion transition: it stores the
// total, derives the percentage (0 when the quiz had no questions, never
// NaN) rounded to two decimals, and stamps the completion time.
func (a *QuizAttempt) Finalize(totalScore, timeSpent int, now time.Time) {
	a.TotalScore = totalScore
	pct := 0.0
	if a.MaxScore > 0 {
		pct = float64(totalScore) / float64(a.MaxScore) * 100
	}
	a.Percentage = math.Round(pct*100) / 100
	a.TimeSpent = timeSpent
	a.CompletedAt = &now
}

// QuizAnswer stores the latest submitted answer for one question of one
// attempt. A resubmission overwrites the row, so at most one row exists
// per (attempt, question).
//
// swagger:model QuizAnswer
type QuizAnswer struct {
	BaseModel
	AttemptID  uint   `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned;not null" json:"attempt_id"`
	QuestionID uint   `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned;not null" json:"question_id"`
	Answer     string `gorm:"type:text" json:"answer"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
	Points     int    `gorm:"default:0" json:"points"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
