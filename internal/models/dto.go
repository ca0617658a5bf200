package models

import "time"

// QuestionDTO mirrors the wire shape the quiz pages consume.
type QuestionDTO struct {
	ID            uint     `json:"id"`
	Text          string   `json:"questionText"`
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correctAnswer"`
}

func (q Question) ToDTO() QuestionDTO {
	return QuestionDTO{
		ID:            q.ID,
		Text:          q.Text,
		Choices:       q.Choices,
		CorrectAnswer: q.CorrectAnswer,
	}
}

// QuizDTO is the public read shape for a single quiz.
type QuizDTO struct {
	ID          uint          `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	DisplayName string        `json:"displayName,omitempty"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	CreatorName string        `json:"creatorName"`
	Questions   []QuestionDTO `json:"questions"`
	TimeLimit   uint          `json:"timeLimit,omitempty"`
	HasPassword bool          `json:"hasPassword"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (q Quiz) ToDTO(creatorName string) QuizDTO {
	questions := make([]QuestionDTO, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = question.ToDTO()
	}
	return QuizDTO{
		ID:          q.ID,
		Slug:        q.Slug,
		Title:       q.Title,
		DisplayName: q.DisplayName,
		Thumbnail:   q.Thumbnail,
		CreatorName: creatorName,
		Questions:   questions,
		TimeLimit:   q.TimeLimit,
		HasPassword: q.HasPassword(),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// QuizStatsDTO is the owner-facing listing shape: the quiz plus aggregates
// recomputed from its submissions on every read. AverageScore is nil until
// the first submission lands.
type QuizStatsDTO struct {
	QuizDTO
	LinkToken        string `json:"linkToken"`
	SubmissionsCount int    `json:"submissionsCount"`
	AverageScore     *int   `json:"averageScore"`
}

// SubmissionDTO is the graded-attempt shape returned from submit and from
// the owner's submission listings.
type SubmissionDTO struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quizId"`
	StudentName    string    `json:"studentName"`
	Answers        []int     `json:"answers"`
	Score          int       `json:"score"`
	TimeSpent      *int      `json:"timeSpent"`
	SubmittedAt    time.Time `json:"submittedAt"`
	TotalQuestions int       `json:"totalQuestions,omitempty"`
	CorrectAnswers int       `json:"correctAnswers,omitempty"`
}

func (s Submission) ToDTO() SubmissionDTO {
	return SubmissionDTO{
		ID:          s.ID,
		QuizID:      s.QuizID,
		StudentName: s.StudentName,
		Answers:     s.Answers,
		Score:       s.Score,
		TimeSpent:   s.TimeSpent,
		SubmittedAt: s.SubmittedAt,
	}
}

// QuizSummaryDTO rides along with a taker's own submission history.
type QuizSummaryDTO struct {
	Title          string    `json:"title"`
	QuestionsCount int       `json:"questionsCount"`
	TimeLimit      uint      `json:"timeLimit,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MySubmissionDTO struct {
	SubmissionDTO
	Quiz QuizSummaryDTO `json:"quiz"`
}

// PaginationDTO is the offset-pagination envelope for submission listings.
type PaginationDTO struct {
	CurrentPage      int   `json:"currentPage"`
	TotalPages       int   `json:"totalPages"`
	TotalSubmissions int64 `json:"totalSubmissions"`
	HasNext          bool  `json:"hasNext"`
	HasPrev          bool  `json:"hasPrev"`
}
