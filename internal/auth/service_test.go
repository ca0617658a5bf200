package auth

import (
	"testing"

	"quizlink/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type memoryUserStore struct {
	users  []*models.User
	nextID uint
}

func (m *memoryUserStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) CreateUser(user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users = append(m.users, user)
	return nil
}

func newTestService() (*Service, *memoryUserStore) {
	store := &memoryUserStore{}
	return NewService(store, "test-secret"), store
}

func TestRegisterHashesAndDefaultsRole(t *testing.T) {
	service, store := newTestService()

	user, token, err := service.Register("Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("expected student role, got %q", user.Role)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(store.users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, store := newTestService()

	if _, _, err := service.Register("Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := service.Register("Other Alice", "alice@example.com", "different")
	if err != ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("duplicate registration created a record, have %d users", len(store.users))
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service, _ := newTestService()

	if _, _, err := service.Register("Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := service.Login("alice@example.com", "not-it")
	_, _, unknownEmail := service.Login("nobody@example.com", "hunter22")

	if wrongPassword != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownEmail != ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	service, _ := newTestService()

	registered, _, err := service.Register("Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, token, err := service.Login("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if identity.UserID != registered.ID || identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.Role != models.RoleStudent {
		t.Fatalf("expected student role in claims, got %q", identity.Role)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}
