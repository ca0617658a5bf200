package user

import (
	"quizlink/internal/auth"
	"quizlink/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// ResetPasswordValue is what an admin reset sets the password to. Documented
// behavior carried over as-is: a fixed literal, no forced rotation.
const ResetPasswordValue = "123456789"

// Store is the persistence slice the user service runs on.
type Store interface {
	ListUsers() ([]models.User, error)
	GetUserByID(userID uint) (*models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(userID uint) error
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListUsers() ([]models.UserDTO, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, err
	}
	dtos := make([]models.UserDTO, len(users))
	for i, u := range users {
		dtos[i] = u.ToDTO()
	}
	return dtos, nil
}

func (s *Service) ChangeRole(userID uint, newRole string) (*models.User, error) {
	if !models.ValidRole(newRole) {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Role = newRole
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets the user's password to the fixed reset value.
func (s *Service) ResetPassword(userID uint) error {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(ResetPasswordValue), auth.BcryptCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.repo.SaveUser(user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *Service) DeleteUser(adminID, userID uint) error {
	if adminID == userID {
		return ErrSelfDelete
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.repo.DeleteUser(userID)
}

func (s *Service) Profile(userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile changes the caller's name and/or password. A password
// change requires the matching current password.
func (s *Service) UpdateProfile(userID uint, name, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if name != "" && name != user.Name {
		user.Name = name
	}

	if newPassword != "" {
		if currentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
			return nil, ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), auth.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}
