package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"
	"seangkatan_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BadgeStore is the slice of the badge repository the evaluator needs.
type BadgeStore interface {
	List(activeOnly bool) ([]model.Badge, error)
	Has(userID, badgeID uint) (bool, error)
	Award(userBadge *model.UserBadge) error
}

// CompletedAttemptCounter counts a student's completed attempts,
// optionally within one quiz category.
type CompletedAttemptCounter interface {
	CountCompleted(studentID uint, category string) (int64, error)
}

type BadgeService struct {
	Store    BadgeStore
	Attempts CompletedAttemptCounter

	// Repo backs the management surface; nil in evaluation-only tests.
	Repo *repository.BadgeRepository
}

func NewBadgeService(repo *repository.BadgeRepository, attempts CompletedAttemptCounter) *BadgeService {
	return &BadgeService{
		Store:    repo,
		Attempts: attempts,
		Repo:     repo,
	}
}

// EvaluateForAttempt checks every active badge against a freshly
// completed attempt and awards the ones whose criteria now hold. A badge
// the user already holds is skipped, so evaluation is idempotent. One
// badge failing never blocks the others. Streak badges are defined in
// the catalog but have no evaluation rule, so they are never awarded
// here.
func (s *BadgeService) EvaluateForAttempt(attempt *model.QuizAttempt, quiz *model.Quiz) ([]model.Badge, error) {
	badges, err := s.Store.List(true)
	if err != nil {
		return nil, err
	}

	var awarded []model.Badge
	for _, badge := range badges {
		earned, err := s.badgeEarned(&badge, attempt, quiz)
		if err != nil {
			logger.Log.Warn("Badge criteria check failed",
				zap.Uint("badge_id", badge.ID), zap.Error(err))
			continue
		}
		if !earned {
			continue
		}

		has, err := s.Store.Has(attempt.StudentID, badge.ID)
		if err != nil {
			logger.Log.Warn("Badge ownership check failed",
				zap.Uint("badge_id", badge.ID), zap.Error(err))
			continue
		}
		if has {
			continue
		}

		attemptID := attempt.ID
		err = s.Store.Award(&model.UserBadge{
			UserID:        attempt.StudentID,
			BadgeID:       badge.ID,
			QuizAttemptID: &attemptID,
		})
		if err != nil {
			// A concurrent award may have won the unique index race.
			logger.Log.Warn("Badge award failed",
				zap.Uint("badge_id", badge.ID), zap.Error(err))
			continue
		}
		awarded = append(awarded, badge)
	}
	return awarded, nil
}

func (s *BadgeService) badgeEarned(badge *model.Badge, attempt *model.QuizAttempt, quiz *model.Quiz) (bool, error) {
	switch badge.CriteriaType {
	case model.CriteriaQuizScore:
		if badge.CriteriaCategory != "" && string(quiz.Category) != badge.CriteriaCategory {
			return false, nil
		}
		return attempt.Percentage >= float64(badge.CriteriaValue), nil

	case model.CriteriaQuizCount:
		count, err := s.Attempts.CountCompleted(attempt.StudentID, badge.CriteriaCategory)
		if err != nil {
			return false, err
		}
		return count >= int64(badge.CriteriaValue), nil

	default:
		return false, nil
	}
}

func (s *BadgeService) List(activeOnly bool) ([]model.Badge, error) {
	return s.Repo.List(activeOnly)
}

func (s *BadgeService) Get(id uint) (*model.Badge, error) {
	badge, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrBadgeNotFound
	}
	return badge, err
}

func (s *BadgeService) Create(badge *model.Badge) error {
	return s.Repo.Create(badge)
}

func (s *BadgeService) Update(badge *model.Badge) error {
	return s.Repo.Update(badge)
}

func (s *BadgeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *BadgeService) UserBadges(userID uint) ([]repository.EarnedBadge, error) {
	return s.Repo.UserBadges(userID)
}

// AwardManually lets staff grant a badge outside the evaluator.
func (s *BadgeService) AwardManually(userID, badgeID uint) error {
	if _, err := s.Get(badgeID); err != nil {
		return err
	}
	has, err := s.Repo.Has(userID, badgeID)
	if err != nil {
		return err
	}
	if has {
		return util.ErrBadgeAlreadyHeld
	}
	return s.Repo.Award(&model.UserBadge{
		UserID:  userID,
		BadgeID: badgeID,
	})
}

func (s *BadgeService) Revoke(userID, badgeID uint) error {
	has, err := s.Repo.Has(userID, badgeID)
	if err != nil {
		return err
	}
	if !has {
		return util.ErrBadgeNotHeld
	}
	return s.Repo.Revoke(userID, badgeID)
}
