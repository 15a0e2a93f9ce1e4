package service

import (
	"strings"

	"seangkatan_backend/internal/model"
)

// ScoreAnswer grades one submitted answer against its question. Grading
// is uniform across question types: case-insensitive string equality
// after trimming surrounding whitespace. An empty submission is never
// correct, even against an empty stored answer.
func ScoreAnswer(question *model.QuizQuestion, submitted string) (isCorrect bool, points int) {
	normalized := strings.ToLower(strings.TrimSpace(submitted))
	if normalized == "" {
		return false, 0
	}
	expected := strings.ToLower(strings.TrimSpace(question.CorrectAnswer))
	if normalized != expected {
		return false, 0
	}
	return true, question.Points
}
