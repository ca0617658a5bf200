package user

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

func (r *Repository) ListUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

// GetUserByID returns (nil, nil) when the user does not exist.
func (r *Repository) GetUserByID(userID uint) (*models.User, error) {
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

func (r *Repository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) DeleteUser(userID uint) error {
	return r.db.Delete(&models.User{}, userID).Error
}
