package model

import "time"

type BadgeCriteria string

const (
	CriteriaQuizScore BadgeCriteria = "quiz_score"
	CriteriaQuizCount BadgeCriteria = "quiz_count"
	// CriteriaStreak exists in the schema but is never evaluated.
	CriteriaStreak BadgeCriteria = "streak"
)

// swagger:model Badge
type Badge struct {
	BaseModel
	Name             string        `gorm:"size:100;not null" json:"name"`
	Description      string        `gorm:"type:text" json:"description"`
	Icon             string        `gorm:"size:255" json:"icon"`
	Category         string        `gorm:"size:50" json:"category"`
	CriteriaType     BadgeCriteria `gorm:"type:enum('quiz_score','quiz_count','streak');not null" json:"criteria_type"`
	CriteriaValue    int           `gorm:"not null" json:"criteria_value"`
	CriteriaCategory string        `gorm:"size:50" json:"criteria_category"`
	IsActive         bool          `gorm:"default:true" json:"is_active"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge records one earned badge. The unique index upholds the
// at-most-once-per-(user, badge) invariant at the database level.
//
// swagger:model UserBadge
type UserBadge struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_user_badge;type:bigint unsigned;not null" json:"user_id"`
	BadgeID       uint      `gorm:"uniqueIndex:idx_user_badge;type:bigint unsigned;not null" json:"badge_id"`
	QuizAttemptID *uint     `gorm:"type:bigint unsigned" json:"quiz_attempt_id"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
