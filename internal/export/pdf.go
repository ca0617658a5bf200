package export

import (
	"bytes"
	"fmt"

	"quizlink/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// SubmissionsPDF renders the submission list as a simple one-table PDF.
func SubmissionsPDF(quiz *models.Quiz, submissions []models.Submission) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	title := quiz.Title
	if quiz.DisplayName != "" {
		title = quiz.DisplayName
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	widths := []float64{70, 30, 35, 55}
	headers := []string{"Student", "Score (%)", "Time spent (s)", "Submitted at"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	sum := 0
	for _, sub := range submissions {
		timeSpent := "-"
		if sub.TimeSpent != nil {
			timeSpent = fmt.Sprintf("%d", *sub.TimeSpent)
		}
		cells := []string{
			sub.StudentName,
			fmt.Sprintf("%d", sub.Score),
			timeSpent,
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		sum += sub.Score
	}

	if len(submissions) > 0 {
		average := float64(sum) / float64(len(submissions))
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(widths[0], 8, "Average", "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%.1f", average), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
