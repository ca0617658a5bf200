package quiz

import (
	"testing"
	"time"

	"quizlink/internal/models"
)

func threeQuestions() []models.Question {
	return []models.Question{
		{Position: 0, Text: "Q1", Choices: []string{"a", "b", "c"}, CorrectAnswer: 0},
		{Position: 1, Text: "Q2", Choices: []string{"a", "b", "c"}, CorrectAnswer: 1},
		{Position: 2, Text: "Q3", Choices: []string{"a", "b", "c"}, CorrectAnswer: 2},
	}
}

func TestScore(t *testing.T) {
	questions := threeQuestions()

	tests := []struct {
		name        string
		answers     []int
		wantCorrect int
		wantPercent int
	}{
		{"all correct", []int{0, 1, 2}, 3, 100},
		{"none correct", []int{1, 2, 0}, 0, 0},
		{"two of three", []int{0, 1, 0}, 2, 67},
		{"one of three", []int{0, 2, 1}, 1, 33},
		{"unanswered marked -1", []int{0, -1, -1}, 1, 33},
		{"short answer sheet", []int{0}, 1, 33},
		{"empty answer sheet", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, percent := Score(questions, tt.answers)
			if correct != tt.wantCorrect || percent != tt.wantPercent {
				t.Fatalf("Score() = (%d, %d), want (%d, %d)", correct, percent, tt.wantCorrect, tt.wantPercent)
			}
		})
	}
}

func TestScoreNoQuestions(t *testing.T) {
	correct, percent := Score(nil, []int{0, 1})
	if correct != 0 || percent != 0 {
		t.Fatalf("expected zero score for empty quiz, got (%d, %d)", correct, percent)
	}
}

func TestScoreBounds(t *testing.T) {
	// Percentage stays in [0, 100] for any sheet length.
	questions := threeQuestions()
	for _, answers := range [][]int{{0, 1, 2, 0, 1}, {5, 6, 7}, {-1, -1, -1}} {
		_, percent := Score(questions, answers)
		if percent < 0 || percent > 100 {
			t.Fatalf("percent %d out of range for answers %v", percent, answers)
		}
	}
}

func TestTimeSpent(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90*time.Second + 700*time.Millisecond)

	if got := TimeSpent(&start, &end); got == nil || *got != 90 {
		t.Fatalf("expected 90 seconds (floored), got %v", got)
	}
	if got := TimeSpent(nil, &end); got != nil {
		t.Fatalf("expected nil without start time, got %v", got)
	}
	if got := TimeSpent(&start, nil); got != nil {
		t.Fatalf("expected nil without end time, got %v", got)
	}
}
