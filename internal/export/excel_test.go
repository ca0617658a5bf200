package export

import (
	"testing"
	"time"

	"quizlink/internal/models"
)

func TestSubmissionsWorkbook(t *testing.T) {
	quiz := &models.Quiz{Title: "Export Quiz", Slug: "export-quiz"}
	spent := 42
	submissions := []models.Submission{
		{StudentName: "Anna", Score: 100, TimeSpent: &spent, SubmittedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{StudentName: "Ben", Score: 33, SubmittedAt: time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)},
	}

	f, err := SubmissionsWorkbook(quiz, submissions)
	if err != nil {
		t.Fatalf("workbook build failed: %v", err)
	}

	title, err := f.GetCellValue(sheetName, "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Export Quiz" {
		t.Fatalf("unexpected title cell: %q", title)
	}

	name, _ := f.GetCellValue(sheetName, "A3")
	if name != "Anna" {
		t.Fatalf("unexpected first row: %q", name)
	}

	label, _ := f.GetCellValue(sheetName, "A5")
	if label != "Average" {
		t.Fatalf("expected average row, got %q", label)
	}
	average, _ := f.GetCellValue(sheetName, "B5")
	if average != "66.5" {
		t.Fatalf("unexpected average: %q", average)
	}
}

func TestSubmissionsPDF(t *testing.T) {
	quiz := &models.Quiz{Title: "Export Quiz", Slug: "export-quiz"}
	submissions := []models.Submission{
		{StudentName: "Anna", Score: 67, SubmittedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	document, err := SubmissionsPDF(quiz, submissions)
	if err != nil {
		t.Fatalf("pdf build failed: %v", err)
	}
	if len(document) == 0 {
		t.Fatal("empty pdf output")
	}
	if string(document[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF, starts with %q", document[:4])
	}
}
