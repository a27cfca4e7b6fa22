package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
)

// Handlers はルーターに登録するハンドラ一式
type Handlers struct {
	Auth        *AuthHandler
	Course      *CourseHandler
	Progress    *ProgressHandler
	Certificate *CertificateHandler
	Quiz        *QuizHandler
}

// NewRouter はミドルウェアと API ルートを組み立てる
func NewRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	managers := middleware.RequireRole(model.RoleInstructor, model.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/certificates/verify/{code}", h.Certificate.VerifyCertificate)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(cfg))

			r.With(managers).Post("/courses", h.Course.CreateCourse)
			r.Route("/courses/{course_id}", func(r chi.Router) {
				r.Get("/", h.Course.GetCourse)
				r.With(managers).Post("/publish", h.Course.PublishCourse)
				r.With(managers).Post("/lessons", h.Course.AddLesson)
				r.Post("/enroll", h.Course.Enroll)
				r.Get("/progress", h.Progress.GetProgress)

				r.Get("/eligibility", h.Certificate.CheckEligibility)
				r.With(managers).Post("/certificates", h.Certificate.IssueCertificate)
				r.Post("/certificate/claim", h.Certificate.ClaimCertificate)
				r.Get("/certificate", h.Certificate.GetCertificate)

				r.With(managers).Post("/quizzes", h.Quiz.CreateQuiz)
			})

			r.Post("/lessons/{lesson_id}/complete", h.Progress.CompleteLesson)

			r.Route("/quizzes/{quiz_id}", func(r chi.Router) {
				r.Get("/", h.Quiz.GetQuiz)
				r.Post("/submissions", h.Quiz.SubmitQuiz)
				r.Get("/submissions/latest", h.Quiz.GetLatestSubmission)
				r.With(managers).Get("/submissions", h.Quiz.ListSubmissions)
			})
		})
	})

	r.Get("/health", healthCheck(db))

	return r
}

func healthCheck(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
