package quiz

import (
	"math"
	"strconv"
	"time"

	"quizlink/internal/auth"
	"quizlink/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence slice the quiz service runs on.
type Store interface {
	CreateQuiz(quiz *models.Quiz) error
	GetQuizBySlug(slug string) (*models.Quiz, error)
	GetQuizByID(id uint) (*models.Quiz, error)
	SlugExists(slug string) (bool, error)
	UpdateQuiz(quiz *models.Quiz) error
	DeleteQuiz(quizID uint) error
	GetQuizzesByCreator(userID uint) ([]models.Quiz, error)
	GetUser(userID uint) (*models.User, error)
	CreateSubmission(submission *models.Submission) error
	GetSubmissionsByQuiz(quizID uint) ([]models.Submission, error)
	GetSubmissionsPage(quizID uint, offset, limit int) ([]models.Submission, int64, error)
	GetSubmissionsForTaker(userID uint, name string) ([]models.Submission, error)
	DeleteSubmissionsByQuiz(quizID uint) error
}

// Cache holds hot quiz payloads keyed by slug. Implementations swallow their
// own backend errors; a broken cache degrades to database reads.
type Cache interface {
	GetQuiz(slug string) (*models.Quiz, bool)
	SetQuiz(quiz *models.Quiz)
	Invalidate(slug string)
}

// Notifier fans a graded submission out to whoever is watching the quiz's
// live results feed.
type Notifier interface {
	NotifySubmission(slug string, submission models.SubmissionDTO)
}

type Service struct {
	repo     Store
	cache    Cache
	notifier Notifier
}

func NewService(repo Store, cache Cache, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
	}
}

type QuestionInput struct {
	Text          string   `json:"questionText" validate:"required"`
	Choices       []string `json:"choices" validate:"required,min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required"`
	DisplayName string          `json:"displayName"`
	Thumbnail   string          `json:"thumbnail"`
	TimeLimit   uint            `json:"timeLimit" validate:"lte=300"`
	Password    string          `json:"password"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// UpdateQuizRequest replaces the quiz wholesale. Password is three-valued:
// absent keeps the current one, empty clears it, anything else replaces it.
type UpdateQuizRequest struct {
	Title       string          `json:"title" validate:"required"`
	DisplayName string          `json:"displayName"`
	Thumbnail   string          `json:"thumbnail"`
	TimeLimit   uint            `json:"timeLimit" validate:"lte=300"`
	Password    *string         `json:"password"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type SubmitRequest struct {
	QuizID      string     `json:"quizId" validate:"required"`
	StudentName string     `json:"studentName" validate:"required"`
	Answers     []int      `json:"answers"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func buildQuestions(quizID uint, inputs []QuestionInput) ([]models.Question, error) {
	if len(inputs) == 0 {
		return nil, ErrNoQuestions
	}
	questions := make([]models.Question, len(inputs))
	for i, input := range inputs {
		if input.CorrectAnswer < 0 || input.CorrectAnswer >= len(input.Choices) {
			return nil, ErrInvalidQuestion
		}
		questions[i] = models.Question{
			QuizID:        quizID,
			Position:      i,
			Text:          input.Text,
			Choices:       input.Choices,
			CorrectAnswer: input.CorrectAnswer,
		}
	}
	return questions, nil
}

// CreateQuiz slugs the title, mints a link token, hashes the optional
// password and persists the quiz for the authenticated creator.
func (s *Service) CreateQuiz(creatorID uint, req CreateQuizRequest) (*models.Quiz, error) {
	questions, err := buildQuestions(0, req.Questions)
	if err != nil {
		return nil, err
	}

	slug, err := generateUniqueSlug(req.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		DisplayName: req.DisplayName,
		Thumbnail:   req.Thumbnail,
		TimeLimit:   req.TimeLimit,
		Slug:        slug,
		LinkToken:   uuid.NewString(),
		CreatorID:   creatorID,
		Questions:   questions,
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), auth.BcryptCost)
		if err != nil {
			return nil, err
		}
		quiz.HashedPassword = string(hashed)
	}

	if err := s.repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}

	s.cache.SetQuiz(quiz)
	return quiz, nil
}

// resolveQuiz looks a quiz up by slug, falling back to its numeric id. Slug
// hits are served from the cache when warm.
func (s *Service) resolveQuiz(idOrSlug string) (*models.Quiz, error) {
	if quiz, ok := s.cache.GetQuiz(idOrSlug); ok {
		return quiz, nil
	}

	quiz, err := s.repo.GetQuizBySlug(idOrSlug)
	if err == nil {
		s.cache.SetQuiz(quiz)
		return quiz, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	id, parseErr := strconv.ParseUint(idOrSlug, 10, 64)
	if parseErr != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetQuizByID(uint(id))
}

// GetQuiz returns the public read shape, creator name included.
func (s *Service) GetQuiz(idOrSlug string) (models.QuizDTO, error) {
	quiz, err := s.resolveQuiz(idOrSlug)
	if err != nil {
		return models.QuizDTO{}, err
	}
	return quiz.ToDTO(s.creatorName(quiz.CreatorID)), nil
}

// OwnerOf resolves a quiz reference to its canonical slug and owner id.
// The websocket hub uses it to gate the live results feed.
func (s *Service) OwnerOf(idOrSlug string) (string, uint, error) {
	quiz, err := s.resolveQuiz(idOrSlug)
	if err != nil {
		return "", 0, err
	}
	return quiz.Slug, quiz.CreatorID, nil
}

func (s *Service) creatorName(userID uint) string {
	user, err := s.repo.GetUser(userID)
	if err != nil || user == nil {
		return "Unknown"
	}
	return user.Name
}

// UpdateQuiz replaces the quiz's content wholesale. Owner only.
func (s *Service) UpdateQuiz(userID uint, idOrSlug string, req UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.resolveQuiz(idOrSlug)
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != userID {
		return nil, ErrForbidden
	}

	questions, err := buildQuestions(quiz.ID, req.Questions)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.DisplayName = req.DisplayName
	quiz.Thumbnail = req.Thumbnail
	quiz.TimeLimit = req.TimeLimit
	quiz.Questions = questions

	if req.Password != nil {
		if *req.Password == "" {
			quiz.HashedPassword = ""
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), auth.BcryptCost)
			if err != nil {
				return nil, err
			}
			quiz.HashedPassword = string(hashed)
		}
	}

	if err := s.repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}

	s.cache.Invalidate(quiz.Slug)
	return quiz, nil
}

// DeleteQuiz removes the quiz itself. Its submissions survive this path;
// only the admin delete purges them.
func (s *Service) DeleteQuiz(userID uint, idOrSlug string) error {
	quiz, err := s.resolveQuiz(idOrSlug)
	if err != nil {
		return err
	}
	if quiz.CreatorID != userID {
		return ErrForbidden
	}

	if err := s.repo.DeleteQuiz(quiz.ID); err != nil {
		return err
	}
	s.cache.Invalidate(quiz.Slug)
	return nil
}

// VerifyPassword implements the advisory password gate. It only answers
// whether the plaintext matches; nothing binds a successful check to the
// submit call that follows.
func (s *Service) VerifyPassword(idOrSlug, password string) (bool, error) {
	quiz, err := s.resolveQuiz(idOrSlug)
	if err != nil {
		return false, err
	}
	if !quiz.HasPassword() {
		return true, nil
	}
	if password == "" {
		return false, ErrPasswordRequired
	}
	err = bcrypt.CompareHashAndPassword([]byte(quiz.HashedPassword), []byte(password))
	return err == nil, nil
}

// Submit grades an attempt and records it. userID is nil for anonymous
// takers. The returned DTO carries the per-quiz totals for immediate
// display; the score itself is always recomputed here, never trusted from
// the client.
func (s *Service) Submit(userID *uint, req SubmitRequest) (models.SubmissionDTO, error) {
	quiz, err := s.resolveQuiz(req.QuizID)
	if err != nil {
		return models.SubmissionDTO{}, err
	}

	correct, percent := Score(quiz.Questions, req.Answers)

	submission := &models.Submission{
		QuizID:      quiz.ID,
		UserID:      userID,
		StudentName: req.StudentName,
		Answers:     req.Answers,
		Score:       percent,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TimeSpent:   TimeSpent(req.StartTime, req.EndTime),
	}
	if err := s.repo.CreateSubmission(submission); err != nil {
		return models.SubmissionDTO{}, err
	}

	dto := submission.ToDTO()
	dto.TotalQuestions = len(quiz.Questions)
	dto.CorrectAnswers = correct

	s.notifier.NotifySubmission(quiz.Slug, dto)
	return dto, nil
}

// QuizzesWithStats lists a creator's quizzes newest-first, each with the
// submission count and average score recomputed by a full scan.
func (s *Service) QuizzesWithStats(creatorID uint, creatorName string) ([]models.QuizStatsDTO, error) {
	quizzes, err := s.repo.GetQuizzesByCreator(creatorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.QuizStatsDTO, len(quizzes))
	for i, quiz := range quizzes {
		submissions, err := s.repo.GetSubmissionsByQuiz(quiz.ID)
		if err != nil {
			return nil, err
		}

		var average *int
		if len(submissions) > 0 {
			sum := 0
			for _, sub := range submissions {
				sum += sub.Score
			}
			rounded := int(math.Round(float64(sum) / float64(len(submissions))))
			average = &rounded
		}

		result[i] = models.QuizStatsDTO{
			QuizDTO:          quiz.ToDTO(creatorName),
			LinkToken:        quiz.LinkToken,
			SubmissionsCount: len(submissions),
			AverageScore:     average,
		}
	}
	return result, nil
}

// SubmissionsPage returns one page of a quiz's submissions for its owner.
func (s *Service) SubmissionsPage(requesterID, quizID uint, page, limit int) ([]models.SubmissionDTO, models.PaginationDTO, error) {
	quiz, err := s.repo.GetQuizByID(quizID)
	if err != nil {
		return nil, models.PaginationDTO{}, err
	}
	if quiz.CreatorID != requesterID {
		return nil, models.PaginationDTO{}, ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	submissions, total, err := s.repo.GetSubmissionsPage(quizID, (page-1)*limit, limit)
	if err != nil {
		return nil, models.PaginationDTO{}, err
	}

	dtos := make([]models.SubmissionDTO, len(submissions))
	for i, sub := range submissions {
		dtos[i] = sub.ToDTO()
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := models.PaginationDTO{
		CurrentPage:      page,
		TotalPages:       totalPages,
		TotalSubmissions: total,
		HasNext:          page < totalPages,
		HasPrev:          page > 1,
	}
	return dtos, pagination, nil
}

// SubmissionsForTaker returns the caller's attempt history with a summary of
// each quiz attached. Attempts whose quiz has since been deleted are
// dropped.
func (s *Service) SubmissionsForTaker(userID uint, name string) ([]models.MySubmissionDTO, error) {
	submissions, err := s.repo.GetSubmissionsForTaker(userID, name)
	if err != nil {
		return nil, err
	}

	result := make([]models.MySubmissionDTO, 0, len(submissions))
	for _, sub := range submissions {
		quiz, err := s.repo.GetQuizByID(sub.QuizID)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, models.MySubmissionDTO{
			SubmissionDTO: sub.ToDTO(),
			Quiz: models.QuizSummaryDTO{
				Title:          quiz.Title,
				QuestionsCount: len(quiz.Questions),
				TimeLimit:      quiz.TimeLimit,
				CreatedAt:      quiz.CreatedAt,
			},
		})
	}
	return result, nil
}

// ExportData returns the quiz and its full submission list for the export
// builders. Owner only.
func (s *Service) ExportData(requesterID, quizID uint) (*models.Quiz, []models.Submission, error) {
	quiz, err := s.repo.GetQuizByID(quizID)
	if err != nil {
		return nil, nil, err
	}
	if quiz.CreatorID != requesterID {
		return nil, nil, ErrForbidden
	}
	submissions, err := s.repo.GetSubmissionsByQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	return quiz, submissions, nil
}

// QuizzesForUser is the admin browse path: any user's quizzes with the same
// aggregates the owner sees.
func (s *Service) QuizzesForUser(userID uint) (*models.User, []models.QuizStatsDTO, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	quizzes, err := s.QuizzesWithStats(userID, user.Name)
	if err != nil {
		return nil, nil, err
	}
	return user, quizzes, nil
}

// AdminDeleteQuiz removes a user's quiz and then its submissions. The two
// deletes are independent; a crash in between leaves orphaned submissions.
func (s *Service) AdminDeleteQuiz(ownerID, quizID uint) error {
	quiz, err := s.repo.GetQuizByID(quizID)
	if err != nil {
		return err
	}
	if quiz.CreatorID != ownerID {
		return ErrNotFound
	}

	if err := s.repo.DeleteQuiz(quiz.ID); err != nil {
		return err
	}
	s.cache.Invalidate(quiz.Slug)
	return s.repo.DeleteSubmissionsByQuiz(quiz.ID)
}
