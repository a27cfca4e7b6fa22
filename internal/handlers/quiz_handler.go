package handlers

import (
	"net/http"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/service"
	"go_4_elearning/internal/webutil"
)

type QuizHandler struct {
	service service.QuizService
}

func NewQuizHandler(s service.QuizService) *QuizHandler {
	return &QuizHandler{service: s}
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "CreateQuiz")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateQuizRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid create quiz request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), courseID, &req, identity)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, quiz, logger)
}

// GetQuiz は正解キーを除いた設問を返す
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetQuiz")

	quizID, err := webutil.URLParamUint(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quiz, logger)
}

func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "SubmitQuiz")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	quizID, err := webutil.URLParamUint(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitQuizRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid quiz submission", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.SubmitQuiz(r.Context(), quizID, req.Answers, identity.ID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, result, logger)
}

// GetLatestSubmission は提出がなければ 404
func (h *QuizHandler) GetLatestSubmission(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetLatestSubmission")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	quizID, err := webutil.URLParamUint(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	submission, err := h.service.GetLatestSubmission(r.Context(), quizID, identity.ID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if submission == nil {
		webutil.HandleError(w, logger, model.NewAppError("SUBMISSION_NOT_FOUND", "No submission found for this quiz", "", model.ErrNotFound))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, submission, logger)
}

func (h *QuizHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "ListSubmissions")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	quizID, err := webutil.URLParamUint(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	rows, err := h.service.ListSubmissions(r.Context(), quizID, identity.ID, identity.Role)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if rows == nil {
		rows = []model.SubmissionWithUser{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, rows, logger)
}
