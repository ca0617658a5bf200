package models

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Title          string     `json:"title" gorm:"not null"`
	DisplayName    string     `json:"display_name"`
	Thumbnail      string     `json:"thumbnail"`
	TimeLimit      uint       `json:"time_limit"` // minutes, 0 = unlimited
	Slug           string     `json:"slug" gorm:"uniqueIndex;not null"`
	LinkToken      string     `json:"link_token" gorm:"uniqueIndex;not null"`
	HashedPassword string     `json:"-"`
	CreatorID      uint       `json:"creator_id" gorm:"index;not null"`
	Questions      []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

// HasPassword reports whether takers must pass the password gate first.
func (q Quiz) HasPassword() bool {
	return q.HashedPassword != ""
}

type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	QuizID        uint                        `json:"quiz_id" gorm:"index;not null"`
	Position      int                         `json:"position" gorm:"not null"`
	Text          string                      `json:"questionText" gorm:"not null"`
	Choices       datatypes.JSONSlice[string] `json:"choices"`
	CorrectAnswer int                         `json:"correctAnswer" gorm:"not null"`
}
