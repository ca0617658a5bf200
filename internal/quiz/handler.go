package quiz

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"quizlink/internal/auth"
	"quizlink/internal/export"
	"quizlink/internal/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		response.Error(w, http.StatusNotFound, "Quiz not found")
	case ErrUserNotFound:
		response.Error(w, http.StatusNotFound, "User not found")
	case ErrForbidden:
		response.Error(w, http.StatusForbidden, "Unauthorized")
	case ErrPasswordRequired:
		response.Error(w, http.StatusBadRequest, "Password is required")
	case ErrInvalidQuestion, ErrNoQuestions:
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("quiz: %v", err)
		response.InternalError(w)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized - Please login first")
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid quiz data")
		return
	}

	quiz, err := h.service.CreateQuiz(identity.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"quiz": quiz.ToDTO(identity.Name),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	quiz, err := h.service.GetQuiz(idOrSlug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"quiz": quiz})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	idOrSlug := mux.Vars(r)["idOrSlug"]

	var req UpdateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid quiz data")
		return
	}

	quiz, err := h.service.UpdateQuiz(identity.UserID, idOrSlug, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"quiz": quiz.ToDTO(identity.Name),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	idOrSlug := mux.Vars(r)["idOrSlug"]

	if err := h.service.DeleteQuiz(identity.UserID, idOrSlug); err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"message": "Quiz deleted successfully",
	})
}

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

// VerifyPassword answers the advisory password gate. It returns a validity
// flag only; the client decides whether to render the quiz.
func (h *Handler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	// An empty body counts as "no password supplied"; unprotected quizzes
	// verify without one.
	var req verifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	valid, err := h.service.VerifyPassword(idOrSlug, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"valid": valid})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid submission data")
		return
	}

	// Attempts by logged-in takers get linked to their account; anyone else
	// submits anonymously under the name they typed.
	var userID *uint
	if identity, ok := auth.FromContext(r.Context()); ok {
		userID = &identity.UserID
	}

	submission, err := h.service.Submit(userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"submission": submission})
}

func (h *Handler) MyQuizzes(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	quizzes, err := h.service.QuizzesWithStats(identity.UserID, identity.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"quizzes": quizzes})
}

func (h *Handler) Submissions(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	quizID, err := strconv.ParseUint(mux.Vars(r)["quizID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	submissions, pagination, err := h.service.SubmissionsPage(identity.UserID, uint(quizID), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"submissions": submissions,
		"pagination":  pagination,
	})
}

func (h *Handler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	submissions, err := h.service.SubmissionsForTaker(identity.UserID, identity.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"submissions": submissions})
}

// ExportSubmissions streams the quiz's full submission list as a
// spreadsheet or PDF download.
func (h *Handler) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	quizID, err := strconv.ParseUint(mux.Vars(r)["quizID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, submissions, err := h.service.ExportData(identity.UserID, uint(quizID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "xlsx":
		workbook, err := export.SubmissionsWorkbook(quiz, submissions)
		if err != nil {
			log.Printf("export xlsx: %v", err)
			response.InternalError(w)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+quiz.Slug+`-submissions.xlsx"`)
		if err := workbook.Write(w); err != nil {
			log.Printf("export xlsx write: %v", err)
		}
	case "pdf":
		document, err := export.SubmissionsPDF(quiz, submissions)
		if err != nil {
			log.Printf("export pdf: %v", err)
			response.InternalError(w)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+quiz.Slug+`-submissions.pdf"`)
		w.Write(document)
	default:
		response.Error(w, http.StatusBadRequest, "Unsupported export format")
	}
}

// UserQuizzes is the admin browse path over any user's quizzes.
func (h *Handler) UserQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, quizzes, err := h.service.QuizzesForUser(uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"quizzes": quizzes,
		"user":    user.ToDTO(),
	})
}

type adminDeleteQuizRequest struct {
	QuizID uint `json:"quizId"`
}

// DeleteUserQuiz is the admin delete path. Unlike the owner path it also
// purges the quiz's submissions.
func (h *Handler) DeleteUserQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req adminDeleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizID == 0 {
		response.Error(w, http.StatusBadRequest, "Quiz ID is required")
		return
	}

	if err := h.service.AdminDeleteQuiz(uint(userID), req.QuizID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"message": "Quiz deleted successfully",
	})
}
