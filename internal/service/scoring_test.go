package service

import (
	"seangkatan_backend/internal/model"
	"testing"
)

func TestScoreAnswer(t *testing.T) {
	question := &model.QuizQuestion{
		CorrectAnswer: "Jakarta",
		Points:        5,
	}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
		wantPoints  int
	}{
		{"exact match", "Jakarta", true, 5},
		{"case insensitive", "jAkArTa", true, 5},
		{"surrounding whitespace trimmed", "  Jakarta \n", true, 5},
		{"wrong answer", "Bandung", false, 0},
		{"empty submission", "", false, 0},
		{"whitespace only submission", "   ", false, 0},
		{"partial match is wrong", "Jakart", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCorrect, gotPoints := ScoreAnswer(question, tt.submitted)
			if gotCorrect != tt.wantCorrect || gotPoints != tt.wantPoints {
				t.Errorf("ScoreAnswer(%q) = (%v, %d), want (%v, %d)",
					tt.submitted, gotCorrect, gotPoints, tt.wantCorrect, tt.wantPoints)
			}
		})
	}
}

func TestScoreAnswerEmptyStoredAnswer(t *testing.T) {
	question := &model.QuizQuestion{CorrectAnswer: "", Points: 3}

	if correct, _ := ScoreAnswer(question, ""); correct {
		t.Error("empty submission must never be correct, even against an empty stored answer")
	}
	if correct, _ := ScoreAnswer(question, "   "); correct {
		t.Error("whitespace submission must never be correct against an empty stored answer")
	}
}
