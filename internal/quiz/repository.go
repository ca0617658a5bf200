package quiz

import (
	"errors"

	"quizlink/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateQuiz(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *Repository) GetQuizBySlug(slug string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("slug = ?", slug).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) GetQuizByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Quiz{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// UpdateQuiz replaces the quiz wholesale: scalar fields are saved and the
// question rows are swapped out for the new set.
func (r *Repository) UpdateQuiz(quiz *models.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(quiz).Error
	})
}

// DeleteQuiz removes the quiz and its questions. Submissions are left alone
// on purpose; only the admin path purges them.
func (r *Repository) DeleteQuiz(quizID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quizID).Error
	})
}

func (r *Repository) GetQuizzesByCreator(userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("creator_id = ?", userID).
		Order("created_at desc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *Repository) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateSubmission(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// GetSubmissionsByQuiz returns every submission for a quiz, newest first.
// Used for the owner aggregates and exports; no incremental counters are
// maintained anywhere.
func (r *Repository) GetSubmissionsByQuiz(quizID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Where("quiz_id = ?", quizID).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *Repository) GetSubmissionsPage(quizID uint, offset, limit int) ([]models.Submission, int64, error) {
	var total int64
	if err := r.db.Model(&models.Submission{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.Submission
	err := r.db.Where("quiz_id = ?", quizID).
		Order("submitted_at desc").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

// GetSubmissionsForTaker covers both halves of a taker's history: attempts
// linked to their account and anonymous attempts made under their name.
func (r *Repository) GetSubmissionsForTaker(userID uint, name string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Where("user_id = ? OR (user_id IS NULL AND student_name = ?)", userID, name).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *Repository) DeleteSubmissionsByQuiz(quizID uint) error {
	return r.db.Where("quiz_id = ?", quizID).Delete(&models.Submission{}).Error
}
