package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/pavelanni/interviewer/internal/i18n"
	"github.com/pavelanni/interviewer/internal/interview"
	"github.com/pavelanni/interviewer/internal/model"
	"github.com/pavelanni/interviewer/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	svc    *interview.Service
	config model.AppConfig
}

// New creates a new Handler.
func New(s *store.Store, svc *interview.Service, cfg model.AppConfig) *Handler {
	return &Handler{store: s, svc: svc, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Route("/api", func(api chi.Router) {
		api.Use(h.requireAuth)

		api.Route("/interviews", func(ir chi.Router) {
			ir.Post("/", h.handleCreateInterview)
			ir.Get("/", h.handleListInterviews)
			ir.Get("/{interviewID}", h.handleGetInterview)
			ir.Get("/{interviewID}/questions", h.handleListQuestions)
			ir.Post("/{interviewID}/start", h.handleStartInterview)
			ir.Get("/{interviewID}/question", h.handleCurrentQuestion)
			ir.Post("/{interviewID}/answers", h.handleSubmitAnswer)
			ir.Get("/{interviewID}/results", h.handleResults)
			ir.Post("/{interviewID}/retry", h.handleRetryEvaluation)
		})

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(requireRole(model.UserRoleAdmin))
			ar.Get("/users", h.handleListUsers)
			ar.Post("/users", h.handleCreateUser)
			ar.Post("/users/{userID}/toggle", h.handleToggleUser)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError sends a localized error message.
func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, map[string]string{"error": appI18n.T(r.Context(), msgID)})
}

// serviceError maps service errors to HTTP statuses. Missing and foreign
// interviews share a status so existence is not leaked; conflictMsg names
// the state the operation required.
func serviceError(w http.ResponseWriter, r *http.Request, err error, conflictMsg string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrAccessDenied):
		writeError(w, r, http.StatusNotFound, "InterviewNotFound")
	case errors.Is(err, model.ErrAlreadyAnswered):
		writeError(w, r, http.StatusConflict, "AlreadyAnswered")
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, r, http.StatusConflict, conflictMsg)
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "ServerError")
	}
}

func interviewID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "interviewID"), 10, 64)
}

type createInterviewRequest struct {
	Title          string           `json:"title"`
	JobRole        string           `json:"job_role"`
	Company        string           `json:"company"`
	Difficulty     model.Difficulty `json:"difficulty"`
	TotalQuestions int              `json:"total_questions"`
}

func validDifficulty(d model.Difficulty) bool {
	switch d {
	case model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
		return true
	}
	return false
}

func (h *Handler) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	if req.Title == "" || req.JobRole == "" || req.TotalQuestions < 1 || !validDifficulty(req.Difficulty) {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	user := model.UserFromContext(r.Context())
	id, err := h.svc.Create(r.Context(), user.ID, interview.CreateParams{
		Title:          req.Title,
		JobRole:        req.JobRole,
		Company:        req.Company,
		Difficulty:     req.Difficulty,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		serviceError(w, r, err, "InvalidRequest")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	interviews, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		serviceError(w, r, err, "InvalidRequest")
		return
	}
	if interviews == nil {
		interviews = []model.Interview{}
	}
	writeJSON(w, http.StatusOK, interviews)
}

func (h *Handler) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	iv, err := h.svc.Get(r.Context(), user.ID, id)
	if err != nil {
		serviceError(w, r, err, "InvalidRequest")
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	questions, err := h.svc.Questions(r.Context(), user.ID, id)
	if err != nil {
		serviceError(w, r, err, "InvalidRequest")
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	// Generation runs in the background; the status line tells the
	// client how many questions exist so far.
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": questions,
		"status":    appI18n.Tp(r.Context(), "QuestionsReady", len(questions)),
	})
}

func (h *Handler) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	iv, err := h.svc.Start(r.Context(), user.ID, id)
	if err != nil {
		serviceError(w, r, err, "AlreadyStarted")
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

func (h *Handler) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	cq, err := h.svc.CurrentQuestion(r.Context(), user.ID, id)
	if err != nil {
		serviceError(w, r, err, "InvalidRequest")
		return
	}
	writeJSON(w, http.StatusOK, cq)
}

type submitAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"time_spent"`
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == 0 {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	user := model.UserFromContext(r.Context())
	res, err := h.svc.SubmitAnswer(r.Context(), user.ID, id, req.QuestionID, req.Answer, req.TimeSpent)
	if err != nil {
		serviceError(w, r, err, "NotInProgress")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	results, err := h.svc.Results(r.Context(), user.ID, id)
	if err != nil {
		serviceError(w, r, err, "NotCompleted")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleRetryEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := interviewID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	user := model.UserFromContext(r.Context())
	if err := h.svc.RetryEvaluation(r.Context(), user.ID, id); err != nil {
		serviceError(w, r, err, "RetryNotCompleted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
