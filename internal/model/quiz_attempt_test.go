package model

import (
	"testing"
	"time"
)

func TestFinalize(t *testing.T) {
	tests := []struct {
		name       string
		maxScore   int
		totalScore int
		want       float64
	}{
		{"perfect", 10, 10, 100},
		{"three quarters", 8, 6, 75},
		{"rounds to two decimals", 3, 1, 33.33},
		{"rounds up", 3, 2, 66.67},
		{"zero max score", 0, 0, 0},
		{"zero total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &QuizAttempt{MaxScore: tt.maxScore}
			now := time.Now()
			a.Finalize(tt.totalScore, 45, now)

			if a.Percentage != tt.want {
				t.Errorf("Percentage = %v, want %v", a.Percentage, tt.want)
			}
			if a.TotalScore != tt.totalScore {
				t.Errorf("TotalScore = %d, want %d", a.TotalScore, tt.totalScore)
			}
			if a.TimeSpent != 45 {
				t.Errorf("TimeSpent = %d, want 45", a.TimeSpent)
			}
			if a.CompletedAt == nil || !a.CompletedAt.Equal(now) {
				t.Errorf("CompletedAt = %v, want %v", a.CompletedAt, now)
			}
			if a.InProgress() {
				t.Error("InProgress() = true after Finalize")
			}
		})
	}
}

func TestInProgress(t *testing.T) {
	a := &QuizAttempt{}
	if !a.InProgress() {
		t.Error("fresh attempt should be in progress")
	}
	now := time.Now()
	a.CompletedAt = &now
	if a.InProgress() {
		t.Error("completed attempt reported in progress")
	}
}
