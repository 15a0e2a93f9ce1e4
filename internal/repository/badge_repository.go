package repository

import (
	"seangkatan_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) Create(badge *model.Badge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) FindByID(id uint) (*model.Badge, error) {
	var badge model.Badge
	if err := r.DB.First(&badge, id).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) Update(badge *model.Badge) error {
	return r.DB.Save(badge).Error
}

func (r *BadgeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Badge{}, id).Error
}

func (r *BadgeRepository) List(activeOnly bool) ([]model.Badge, error) {
	var badges []model.Badge
	query := r.DB.Model(&model.Badge{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("category ASC, criteria_value ASC").Find(&badges).Error
	return badges, err
}

// Has reports whether the user already holds the badge.
func (r *BadgeRepository) Has(userID, badgeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (r *BadgeRepository) Award(userBadge *model.UserBadge) error {
	return r.DB.Create(userBadge).Error
}

func (r *BadgeRepository) Revoke(userID, badgeID uint) error {
	return r.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Delete(&model.UserBadge{}).Error
}

// EarnedBadge pairs a user's award record with the badge definition.
type EarnedBadge struct {
	model.Badge
	QuizAttemptID *uint     `json:"quiz_attempt_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

func (r *BadgeRepository) UserBadges(userID uint) ([]EarnedBadge, error) {
	var earned []EarnedBadge
	err := r.DB.Model(&model.UserBadge{}).
		Select("badges.*, user_badges.quiz_attempt_id, user_badges.earned_at").
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.earned_at DESC").
		Scan(&earned).Error
	return earned, err
}
