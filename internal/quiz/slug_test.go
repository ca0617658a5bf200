package quiz

import "testing"

func TestGenerateUniqueSlug(t *testing.T) {
	taken := map[string]bool{}
	exists := func(s string) (bool, error) { return taken[s], nil }

	first, err := generateUniqueSlug("My Great Quiz!", exists)
	if err != nil {
		t.Fatalf("slug generation failed: %v", err)
	}
	if first != "my-great-quiz" {
		t.Fatalf("expected my-great-quiz, got %q", first)
	}
	taken[first] = true

	second, err := generateUniqueSlug("My Great Quiz!", exists)
	if err != nil {
		t.Fatalf("slug generation failed: %v", err)
	}
	if second != "my-great-quiz-2" {
		t.Fatalf("expected my-great-quiz-2, got %q", second)
	}
	taken[second] = true

	third, err := generateUniqueSlug("My Great Quiz!", exists)
	if err != nil {
		t.Fatalf("slug generation failed: %v", err)
	}
	if third != "my-great-quiz-3" {
		t.Fatalf("expected my-great-quiz-3, got %q", third)
	}
}

func TestGenerateUniqueSlugEmptyTitle(t *testing.T) {
	exists := func(string) (bool, error) { return false, nil }
	got, err := generateUniqueSlug("???", exists)
	if err != nil {
		t.Fatalf("slug generation failed: %v", err)
	}
	if got != "quiz" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}
