package handlers

import (
	"net/http"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/service"
	"go_4_elearning/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

// GetProgress はログイン中ユーザーの講座進捗を返す
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetProgress")

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

	progress, err := h.service.GetUserCourseProgress(r.Context(), identity.ID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

func (h *ProgressHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "CompleteLesson")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	lessonID, err := webutil.URLParamUint(r, "lesson_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.CompleteLesson(r.Context(), identity.ID, lessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}
