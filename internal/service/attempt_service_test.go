package service

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fakeAttemptStore struct {
	attempts map[uint]*model.QuizAttempt
	answers  map[[2]uint]*model.QuizAnswer
	nextID   uint
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts: map[uint]*model.QuizAttempt{},
		answers:  map[[2]uint]*model.QuizAnswer{},
	}
}

func (s *fakeAttemptStore) Create(attempt *model.QuizAttempt) error {
	s.nextID++
	attempt.ID = s.nextID
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *fakeAttemptStore) FindByID(id uint) (*model.QuizAttempt, error) {
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (s *fakeAttemptStore) FindInProgress(quizID, studentID uint) (*model.QuizAttempt, error) {
	for _, a := range s.attempts {
		if a.QuizID == quizID && a.StudentID == studentID && a.InProgress() {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAttemptStore) UpsertAnswer(answer *model.QuizAnswer) error {
	s.answers[[2]uint{answer.AttemptID, answer.QuestionID}] = answer
	return nil
}

func (s *fakeAttemptStore) Answers(attemptID uint) ([]model.QuizAnswer, error) {
	var out []model.QuizAnswer
	for _, a := range s.answers {
		if a.AttemptID == attemptID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeAttemptStore) Finalize(attemptID uint, timeSpent int, now time.Time) (*model.QuizAttempt, bool, error) {
	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, false, gorm.ErrRecordNotFound
	}
	if !attempt.InProgress() {
		return attempt, true, nil
	}
	total := 0
	for _, a := range s.answers {
		if a.AttemptID == attemptID {
			total += a.Points
		}
	}
	attempt.Finalize(total, timeSpent, now)
	return attempt, false, nil
}

func (s *fakeAttemptStore) ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var out []model.QuizAttempt
	for _, a := range s.attempts {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

type fakeQuizStore struct {
	quizzes   map[uint]*model.Quiz
	questions map[uint]*model.QuizQuestion
	maxScores map[uint]int
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes:   map[uint]*model.Quiz{},
		questions: map[uint]*model.QuizQuestion{},
		maxScores: map[uint]int{},
	}
}

func (s *fakeQuizStore) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (s *fakeQuizStore) FindQuestionByID(id uint) (*model.QuizQuestion, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (s *fakeQuizStore) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	var out []model.QuizQuestion
	for _, q := range s.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *fakeQuizStore) MaxScore(quizID uint) (int, error) {
	return s.maxScores[quizID], nil
}

func (s *fakeQuizStore) addQuiz(id uint, category model.QuizCategory, active bool) {
	quiz := &model.Quiz{Category: category, IsActive: active}
	quiz.ID = id
	s.quizzes[id] = quiz
}

func (s *fakeQuizStore) addQuestion(id, quizID uint, answer string, points int) {
	q := &model.QuizQuestion{QuizID: quizID, CorrectAnswer: answer, Points: points}
	q.ID = id
	s.questions[id] = q
	s.maxScores[quizID] += points
}

func newTestAttemptService() (*AttemptService, *fakeAttemptStore, *fakeQuizStore) {
	attempts := newFakeAttemptStore()
	quizzes := newFakeQuizStore()
	return NewAttemptService(attempts, quizzes, nil), attempts, quizzes
}

func mustStart(t *testing.T, svc *AttemptService, quizID, studentID uint) *model.QuizAttempt {
	t.Helper()
	started, err := svc.Start(quizID, studentID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return started.Attempt
}

func TestStartFreezesMaxScore(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)
	quizzes.addQuestion(11, 1, "9", 7)

	attempt := mustStart(t, svc, 1, 100)
	if attempt.MaxScore != 10 {
		t.Errorf("MaxScore = %d, want 10", attempt.MaxScore)
	}

	// Adding a question after the attempt started must not change it.
	quizzes.addQuestion(12, 1, "16", 5)
	if attempt.MaxScore != 10 {
		t.Errorf("MaxScore changed after question edit: %d", attempt.MaxScore)
	}
}

func TestStartReturnsQuizAndQuestions(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)
	quizzes.addQuestion(11, 1, "9", 7)

	started, err := svc.Start(1, 100)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started.Attempt == nil || started.Attempt.ID == 0 {
		t.Fatal("no attempt in the start result")
	}
	if started.Quiz == nil || started.Quiz.ID != 1 {
		t.Errorf("Quiz = %+v, want quiz 1", started.Quiz)
	}
	if len(started.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(started.Questions))
	}
}

func TestStartRejectsSecondOpenAttempt(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)

	if _, err := svc.Start(1, 100); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if _, err := svc.Start(1, 100); !errors.Is(err, util.ErrAttemptInProgress) {
		t.Errorf("second Start error = %v, want ErrAttemptInProgress", err)
	}

	// A different student is unaffected.
	if _, err := svc.Start(1, 101); err != nil {
		t.Errorf("other student Start: %v", err)
	}
}

func TestStartInactiveQuiz(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, false)

	if _, err := svc.Start(1, 100); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("Start on inactive quiz = %v, want ErrQuizNotFound", err)
	}
	if _, err := svc.Start(99, 100); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("Start on missing quiz = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitAnswerOverwrites(t *testing.T) {
	svc, attempts, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)

	attempt := mustStart(t, svc, 1, 100)

	first, err := svc.SubmitAnswer(attempt.ID, 100, 10, "5")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if first.IsCorrect || first.Points != 0 {
		t.Errorf("wrong answer graded (%v, %d), want (false, 0)", first.IsCorrect, first.Points)
	}

	second, err := svc.SubmitAnswer(attempt.ID, 100, 10, "4")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !second.IsCorrect || second.Points != 3 {
		t.Errorf("correct answer graded (%v, %d), want (true, 3)", second.IsCorrect, second.Points)
	}

	stored, _ := attempts.Answers(attempt.ID)
	if len(stored) != 1 {
		t.Fatalf("stored %d answers, want 1", len(stored))
	}
	if stored[0].Answer != "4" || !stored[0].IsCorrect {
		t.Errorf("stored answer = %+v, resubmission did not overwrite", stored[0])
	}
}

func TestSubmitAnswerOwnershipAndScope(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuiz(2, model.CategoryReading, true)
	quizzes.addQuestion(10, 1, "4", 3)
	quizzes.addQuestion(20, 2, "cat", 1)

	attempt := mustStart(t, svc, 1, 100)

	if _, err := svc.SubmitAnswer(attempt.ID, 999, 10, "4"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("other student's submit = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.SubmitAnswer(attempt.ID, 100, 20, "cat"); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("cross-quiz question = %v, want ErrQuestionNotFound", err)
	}
	if _, err := svc.SubmitAnswer(999, 100, 10, "4"); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("missing attempt = %v, want ErrAttemptNotFound", err)
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)

	attempt := mustStart(t, svc, 1, 100)
	if _, _, err := svc.Complete(attempt.ID, 100, 60); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := svc.SubmitAnswer(attempt.ID, 100, 10, "4"); !errors.Is(err, util.ErrAttemptCompleted) {
		t.Errorf("submit after completion = %v, want ErrAttemptCompleted", err)
	}
}

func TestCompletePercentage(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)
	quizzes.addQuestion(11, 1, "9", 5)

	attempt := mustStart(t, svc, 1, 100)
	svc.SubmitAnswer(attempt.ID, 100, 10, "4")
	svc.SubmitAnswer(attempt.ID, 100, 11, "wrong")

	done, _, err := svc.Complete(attempt.ID, 100, 120)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.TotalScore != 3 {
		t.Errorf("TotalScore = %d, want 3", done.TotalScore)
	}
	if done.Percentage != 37.5 {
		t.Errorf("Percentage = %v, want 37.5", done.Percentage)
	}
	if done.TimeSpent != 120 {
		t.Errorf("TimeSpent = %d, want 120", done.TimeSpent)
	}
	if done.InProgress() {
		t.Error("attempt still in progress after Complete")
	}
}

func TestCompleteZeroMaxScore(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)

	attempt := mustStart(t, svc, 1, 100)
	done, _, err := svc.Complete(attempt.ID, 100, 10)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 for a quiz with no questions", done.Percentage)
	}
}

func TestDoubleCompleteIsNoOp(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 3)

	attempt := mustStart(t, svc, 1, 100)
	svc.SubmitAnswer(attempt.ID, 100, 10, "4")

	first, _, err := svc.Complete(attempt.ID, 100, 60)
	if err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	second, badges, err := svc.Complete(attempt.ID, 100, 999)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if badges != nil {
		t.Errorf("second Complete awarded badges: %v", badges)
	}
	if second.TotalScore != first.TotalScore || second.Percentage != first.Percentage {
		t.Errorf("second Complete changed the result: %+v vs %+v", second, first)
	}
	if second.TimeSpent != 60 {
		t.Errorf("TimeSpent = %d, second Complete must not overwrite it", second.TimeSpent)
	}
}

func TestCompleteAwardsBadges(t *testing.T) {
	attempts := newFakeAttemptStore()
	quizzes := newFakeQuizStore()
	quizzes.addQuiz(1, model.CategoryMath, true)
	quizzes.addQuestion(10, 1, "4", 10)

	badgeStore := newFakeBadgeStore()
	badgeStore.add(1, model.CriteriaQuizScore, 70, "", true)
	badges := &BadgeService{Store: badgeStore, Attempts: &fakeCounter{}}

	svc := NewAttemptService(attempts, quizzes, badges)

	attempt := mustStart(t, svc, 1, 100)
	svc.SubmitAnswer(attempt.ID, 100, 10, "4")

	_, awarded, err := svc.Complete(attempt.ID, 100, 30)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(awarded) != 1 || awarded[0].ID != 1 {
		t.Errorf("awarded = %v, want the score badge", awarded)
	}
}

func TestResultsVisibility(t *testing.T) {
	svc, _, quizzes := newTestAttemptService()
	quizzes.addQuiz(1, model.CategoryMath, true)

	attempt := mustStart(t, svc, 1, 100)

	if _, _, err := svc.Results(attempt.ID, 100, false); err != nil {
		t.Errorf("owner Results: %v", err)
	}
	if _, _, err := svc.Results(attempt.ID, 999, true); err != nil {
		t.Errorf("staff Results: %v", err)
	}
	if _, _, err := svc.Results(attempt.ID, 999, false); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("stranger Results = %v, want ErrPermissionDenied", err)
	}
}
