package service

import (
	"errors"
	"seangkatan_backend/internal/model"
	"testing"
)

type fakeBadgeStore struct {
	badges   []model.Badge
	held     map[[2]uint]bool
	awardErr map[uint]error
}

func newFakeBadgeStore() *fakeBadgeStore {
	return &fakeBadgeStore{
		held:     map[[2]uint]bool{},
		awardErr: map[uint]error{},
	}
}

func (s *fakeBadgeStore) add(id uint, criteria model.BadgeCriteria, value int, category string, active bool) {
	b := model.Badge{
		CriteriaType:     criteria,
		CriteriaValue:    value,
		CriteriaCategory: category,
		IsActive:         active,
	}
	b.ID = id
	s.badges = append(s.badges, b)
}

func (s *fakeBadgeStore) List(activeOnly bool) ([]model.Badge, error) {
	if !activeOnly {
		return s.badges, nil
	}
	var out []model.Badge
	for _, b := range s.badges {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBadgeStore) Has(userID, badgeID uint) (bool, error) {
	return s.held[[2]uint{userID, badgeID}], nil
}

func (s *fakeBadgeStore) Award(ub *model.UserBadge) error {
	if err := s.awardErr[ub.BadgeID]; err != nil {
		return err
	}
	s.held[[2]uint{ub.UserID, ub.BadgeID}] = true
	return nil
}

type fakeCounter struct {
	total      int64
	byCategory map[string]int64
}

func (c *fakeCounter) CountCompleted(studentID uint, category string) (int64, error) {
	if category == "" {
		return c.total, nil
	}
	return c.byCategory[category], nil
}

func completedAttempt(studentID uint, percentage float64) *model.QuizAttempt {
	a := &model.QuizAttempt{StudentID: studentID, Percentage: percentage}
	a.ID = 1
	return a
}

func mathQuiz() *model.Quiz {
	return &model.Quiz{Category: model.CategoryMath}
}

func TestEvaluateScoreBadgeThreshold(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizScore, 70, "", true)
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{}}

	tests := []struct {
		name       string
		percentage float64
		wantAward  bool
	}{
		{"below threshold", 69.99, false},
		{"at threshold", 70, true},
		{"above threshold", 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.held = map[[2]uint]bool{}
			awarded, err := svc.EvaluateForAttempt(completedAttempt(100, tt.percentage), mathQuiz())
			if err != nil {
				t.Fatalf("EvaluateForAttempt: %v", err)
			}
			if got := len(awarded) == 1; got != tt.wantAward {
				t.Errorf("awarded = %v, want award %v", awarded, tt.wantAward)
			}
		})
	}
}

func TestEvaluateScoreBadgeCategoryMismatch(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizScore, 80, "reading", true)
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{}}

	awarded, err := svc.EvaluateForAttempt(completedAttempt(100, 95), mathQuiz())
	if err != nil {
		t.Fatalf("EvaluateForAttempt: %v", err)
	}
	if len(awarded) != 0 {
		t.Errorf("reading badge awarded for a math quiz: %v", awarded)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizScore, 70, "", true)
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{}}

	attempt := completedAttempt(100, 90)
	first, _ := svc.EvaluateForAttempt(attempt, mathQuiz())
	if len(first) != 1 {
		t.Fatalf("first evaluation awarded %d badges, want 1", len(first))
	}

	second, err := svc.EvaluateForAttempt(attempt, mathQuiz())
	if err != nil {
		t.Fatalf("second evaluation: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("re-evaluation awarded again: %v", second)
	}
}

func TestEvaluateCountBadgeBoundary(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizCount, 5, "", true)

	counter := &fakeCounter{total: 4}
	svc := &BadgeService{Store: store, Attempts: counter}

	awarded, _ := svc.EvaluateForAttempt(completedAttempt(100, 50), mathQuiz())
	if len(awarded) != 0 {
		t.Errorf("awarded at 4 completions, want none before 5")
	}

	counter.total = 5
	awarded, _ = svc.EvaluateForAttempt(completedAttempt(100, 50), mathQuiz())
	if len(awarded) != 1 {
		t.Errorf("not awarded at 5 completions")
	}
}

func TestEvaluateCountBadgeWithCategory(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizCount, 3, "math", true)

	counter := &fakeCounter{total: 10, byCategory: map[string]int64{"math": 2}}
	svc := &BadgeService{Store: store, Attempts: counter}

	awarded, _ := svc.EvaluateForAttempt(completedAttempt(100, 50), mathQuiz())
	if len(awarded) != 0 {
		t.Errorf("category-scoped count badge used the global count")
	}
}

func TestEvaluateStreakNeverAwarded(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaStreak, 1, "", true)
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{total: 100}}

	awarded, err := svc.EvaluateForAttempt(completedAttempt(100, 100), mathQuiz())
	if err != nil {
		t.Fatalf("EvaluateForAttempt: %v", err)
	}
	if len(awarded) != 0 {
		t.Errorf("streak badge awarded: %v", awarded)
	}
}

func TestEvaluateSkipsInactiveBadges(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizScore, 70, "", false)
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{}}

	awarded, _ := svc.EvaluateForAttempt(completedAttempt(100, 90), mathQuiz())
	if len(awarded) != 0 {
		t.Errorf("inactive badge awarded: %v", awarded)
	}
}

func TestEvaluateOneFailureDoesNotBlockOthers(t *testing.T) {
	store := newFakeBadgeStore()
	store.add(1, model.CriteriaQuizScore, 70, "", true)
	store.add(2, model.CriteriaQuizScore, 80, "", true)
	store.awardErr[1] = errors.New("duplicate entry")
	svc := &BadgeService{Store: store, Attempts: &fakeCounter{}}

	awarded, err := svc.EvaluateForAttempt(completedAttempt(100, 90), mathQuiz())
	if err != nil {
		t.Fatalf("EvaluateForAttempt: %v", err)
	}
	if len(awarded) != 1 || awarded[0].ID != 2 {
		t.Errorf("awarded = %v, want only badge 2", awarded)
	}
}
