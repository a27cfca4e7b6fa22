package handlers

import (
	"log/slog"
	"net/http"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/service"
	"go_4_elearning/internal/webutil"
)

type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(s service.CourseService) *CourseHandler {
	return &CourseHandler{service: s}
}

// CreateCourse は講座を作成する (講師/管理者)
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "CreateCourse")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateCourseRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid create course request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req, identity)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// GetCourse はレッスン一覧付きで講座を返す
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetCourse")

	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

func (h *CourseHandler) PublishCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "PublishCourse")

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

	course, err := h.service.PublishCourse(r.Context(), courseID, identity)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "AddLesson")

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

	var req model.CreateLessonRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid add lesson request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	lesson, err := h.service.AddLesson(r.Context(), courseID, &req, identity)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, lesson, logger)
}

// Enroll はログイン中のユーザーを講座に登録する
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "Enroll")

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

	enrollment, err := h.service.Enroll(r.Context(), courseID, identity.ID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Enrolled", slog.Uint64("course_id", uint64(courseID)))
	webutil.RespondWithJSON(w, http.StatusCreated, enrollment, logger)
}
