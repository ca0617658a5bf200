package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"quizlink/internal/response"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	secure   bool
}

// NewHandler builds the auth endpoints. secure controls the cookie's Secure
// flag and should be on outside local development.
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		secure:   secure,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid registration data")
		return
	}

	user, token, err := h.service.Register(req.Name, req.Email, req.Password)
	if err == ErrUserExists {
		response.Error(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Printf("register: %v", err)
		response.InternalError(w)
		return
	}

	h.setSessionCookie(w, token)
	response.OK(w, map[string]interface{}{
		"user":  user.ToDTO(),
		"token": token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err == ErrInvalidCredentials {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("login: %v", err)
		response.InternalError(w)
		return
	}

	h.setSessionCookie(w, token)
	response.OK(w, map[string]interface{}{
		"user":  user.ToDTO(),
		"token": token,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
