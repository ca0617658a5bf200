package auth

import (
	"time"

	"quizlink/internal/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost matches the cost the rest of the platform hashes with.
	BcryptCost = 12
	// SessionTTL is the lifetime of an issued session token.
	SessionTTL = 30 * 24 * time.Hour
)

// UserStore is the slice of persistence the auth service needs.
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
}

type Service struct {
	repo      UserStore
	jwtSecret []byte
}

func NewService(repo UserStore, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates a student account and issues a session token for it.
func (s *Service) Register(name, email, password string) (*models.User, string, error) {
	existing, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleStudent,
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both come back as ErrInvalidCredentials.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken signs the full session state into an HS256 token. There is
// no server-side session store; the token is the session.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(SessionTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
