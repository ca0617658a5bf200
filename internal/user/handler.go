package user

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"quizlink/internal/auth"
	"quizlink/internal/response"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		response.Error(w, http.StatusNotFound, "User not found")
	case ErrInvalidRole:
		response.Error(w, http.StatusBadRequest, "Invalid role")
	case ErrSelfDelete:
		response.Error(w, http.StatusBadRequest, "Cannot delete your own account")
	case ErrCurrentPasswordRequired:
		response.Error(w, http.StatusBadRequest, "Current password is required")
	case ErrWrongPassword:
		response.Error(w, http.StatusBadRequest, "Current password is incorrect")
	default:
		log.Printf("user: %v", err)
		response.InternalError(w)
	}
}

// List returns every account, newest first. Admin only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"users": users})
}

type updateUserRequest struct {
	Action  string `json:"action"`
	NewRole string `json:"newRole"`
}

// Update dispatches the admin PATCH actions: changeRole and resetPassword.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	switch req.Action {
	case "changeRole":
		user, err := h.service.ChangeRole(uint(userID), req.NewRole)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.OK(w, map[string]interface{}{
			"message": "User role updated successfully",
			"user":    user.ToDTO(),
		})
	case "resetPassword":
		if err := h.service.ResetPassword(uint(userID)); err != nil {
			writeServiceError(w, err)
			return
		}
		response.OK(w, map[string]interface{}{
			"message": "Password reset successfully to " + ResetPasswordValue,
		})
	default:
		response.Error(w, http.StatusBadRequest, "Invalid action")
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	userID, err := strconv.ParseUint(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(identity.UserID, uint(userID)); err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"message": "User deleted successfully",
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	user, err := h.service.Profile(identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"user": user.ToDTO()})
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.service.UpdateProfile(identity.UserID, req.Name, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"user":    user.ToDTO(),
		"message": "Profile updated successfully",
	})
}
