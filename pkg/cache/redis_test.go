package cache

import (
	"testing"

	"quizlink/internal/models"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewRedisCache(mr.Addr())
}

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		ID:        7,
		Title:     "Cached Quiz",
		Slug:      "cached-quiz",
		LinkToken: "tok-123",
		CreatorID: 1,
		Questions: []models.Question{
			{Position: 0, Text: "Q1", Choices: []string{"a", "b"}, CorrectAnswer: 1},
		},
	}
}

func TestQuizRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	if _, ok := cache.GetQuiz("cached-quiz"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	cache.SetQuiz(sampleQuiz())

	quiz, ok := cache.GetQuiz("cached-quiz")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if quiz.ID != 7 || quiz.Slug != "cached-quiz" {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("questions did not survive the round trip: %+v", quiz.Questions)
	}
}

func TestInvalidate(t *testing.T) {
	cache := newTestCache(t)

	cache.SetQuiz(sampleQuiz())
	cache.Invalidate("cached-quiz")

	if _, ok := cache.GetQuiz("cached-quiz"); ok {
		t.Fatal("expected a miss after invalidation")
	}
}

func TestGetQuizSurvivesBackendLoss(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	cache := NewRedisCache(mr.Addr())
	cache.SetQuiz(sampleQuiz())
	mr.Close()

	// A dead backend degrades to misses, never errors.
	if _, ok := cache.GetQuiz("cached-quiz"); ok {
		t.Fatal("expected a miss with the backend gone")
	}
}
