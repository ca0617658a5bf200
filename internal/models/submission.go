package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one recorded attempt at a quiz. UserID is nil for anonymous
// takers. Answers holds one selected-choice index per question, -1 meaning
// unanswered. Score is the server-computed integer percentage.
type Submission struct {
	ID          uint                     `json:"id" gorm:"primaryKey"`
	QuizID      uint                     `json:"quiz_id" gorm:"index;not null"`
	UserID      *uint                    `json:"user_id" gorm:"index"`
	StudentName string                   `json:"student_name" gorm:"not null"`
	Answers     datatypes.JSONSlice[int] `json:"answers"`
	Score       int                      `json:"score" gorm:"not null"`
	StartTime   *time.Time               `json:"start_time"`
	EndTime     *time.Time               `json:"end_time"`
	TimeSpent   *int                     `json:"time_spent"` // seconds
	SubmittedAt time.Time                `json:"submitted_at" gorm:"autoCreateTime"`
}
