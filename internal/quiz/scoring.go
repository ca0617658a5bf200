package quiz

import (
	"math"
	"time"

	"quizlink/internal/models"
)

// Score grades an answer sheet against the quiz's answer key. Every question
// weighs the same; there is no partial credit. The percentage is rounded to
// the nearest integer, so 2 of 3 correct scores 67.
func Score(questions []models.Question, answers []int) (correct int, percent int) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i, question := range questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	percent = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return correct, percent
}

// TimeSpent derives whole elapsed seconds from the taker's start and end
// timestamps. Nil when either is missing.
func TimeSpent(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	seconds := int(end.Sub(*start) / time.Second)
	return &seconds
}
