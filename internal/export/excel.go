// Package export renders submission lists into downloadable documents.
// Formatting is deliberately minimal; the libraries own the file formats.
package export

import (
	"fmt"

	"quizlink/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Submissions"

var columns = []string{"Student", "Score (%)", "Time spent (s)", "Submitted at"}

// SubmissionsWorkbook builds an xlsx workbook with one row per submission
// and a closing average-score row.
func SubmissionsWorkbook(quiz *models.Quiz, submissions []models.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	title := quiz.Title
	if quiz.DisplayName != "" {
		title = quiz.DisplayName
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return nil, err
		}
	}

	sum := 0
	for i, sub := range submissions {
		row := i + 3
		timeSpent := ""
		if sub.TimeSpent != nil {
			timeSpent = fmt.Sprintf("%d", *sub.TimeSpent)
		}
		values := []interface{}{
			sub.StudentName,
			sub.Score,
			timeSpent,
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
		sum += sub.Score
	}

	if len(submissions) > 0 {
		row := len(submissions) + 3
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Average"); err != nil {
			return nil, err
		}
		average := float64(sum) / float64(len(submissions))
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), average); err != nil {
			return nil, err
		}
	}

	return f, nil
}
