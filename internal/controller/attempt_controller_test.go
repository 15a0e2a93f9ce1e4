package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubAttemptStore struct{}

func (s *stubAttemptStore) Create(attempt *model.QuizAttempt) error {
	attempt.ID = 7
	return nil
}

func (s *stubAttemptStore) FindByID(id uint) (*model.QuizAttempt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAttemptStore) FindInProgress(quizID, studentID uint) (*model.QuizAttempt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAttemptStore) UpsertAnswer(answer *model.QuizAnswer) error { return nil }

func (s *stubAttemptStore) Answers(attemptID uint) ([]model.QuizAnswer, error) { return nil, nil }

func (s *stubAttemptStore) Finalize(attemptID uint, timeSpent int, now time.Time) (*model.QuizAttempt, bool, error) {
	return nil, false, gorm.ErrRecordNotFound
}

func (s *stubAttemptStore) ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	return nil, 0, nil
}

type stubQuizStore struct {
	quiz      *model.Quiz
	questions []model.QuizQuestion
}

func (s *stubQuizStore) FindByID(id uint) (*model.Quiz, error) {
	if s.quiz == nil || s.quiz.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.quiz, nil
}

func (s *stubQuizStore) FindQuestionByID(id uint) (*model.QuizQuestion, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubQuizStore) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	return s.questions, nil
}

func (s *stubQuizStore) MaxScore(quizID uint) (int, error) {
	total := 0
	for _, q := range s.questions {
		total += q.Points
	}
	return total, nil
}

// The 201 body must carry the attempt id, the quiz and the question
// list so the client can render the quiz from this single response.
// Correct answers must never appear in it.
func TestStartResponseCarriesQuizAndQuestions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	quiz := &model.Quiz{Title: "Perkalian dasar", Category: model.CategoryMath, IsActive: true}
	quiz.ID = 1
	q1 := model.QuizQuestion{QuizID: 1, Question: "3 x 4?", Type: model.QuestionFillBlank, CorrectAnswer: "12", Points: 10}
	q1.ID = 10
	q2 := model.QuizQuestion{QuizID: 1, Question: "5 x 2?", Type: model.QuestionFillBlank, CorrectAnswer: "10", Points: 10}
	q2.ID = 11

	svc := service.NewAttemptService(
		&stubAttemptStore{},
		&stubQuizStore{quiz: quiz, questions: []model.QuizQuestion{q1, q2}},
		nil,
	)
	ctrl := NewAttemptController(svc)

	router := gin.New()
	router.POST("/api/quizzes/:id/attempts", func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 100, Role: model.RoleStudent})
	}, ctrl.Start)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/quizzes/1/attempts", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			AttemptID uint                     `json:"attempt_id"`
			Quiz      *model.Quiz              `json:"quiz"`
			Questions []map[string]interface{} `json:"questions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.AttemptID != 7 {
		t.Errorf("attempt_id = %d, want 7", body.Data.AttemptID)
	}
	if body.Data.Quiz == nil || body.Data.Quiz.Title != "Perkalian dasar" {
		t.Errorf("quiz = %+v, want the started quiz", body.Data.Quiz)
	}
	if len(body.Data.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(body.Data.Questions))
	}
	for _, q := range body.Data.Questions {
		if _, leaked := q["correct_answer"]; leaked {
			t.Error("correct answer serialized to the client")
		}
	}
}
