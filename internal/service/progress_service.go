package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"

	"gorm.io/gorm"
)

//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
type ProgressService interface {
	GetUserCourseProgress(ctx context.Context, userID, courseID uint) (*model.CourseProgress, error)
	CompleteLesson(ctx context.Context, userID, lessonID uint) (*model.CourseProgress, error)
}

type progressService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
	enrollRepo repository.EnrollmentRepository
	progRepo   repository.ProgressRepository
	now        func() time.Time
}

func NewProgressService(db *gorm.DB, courseRepo repository.CourseRepository, enrollRepo repository.EnrollmentRepository, progRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:         db,
		courseRepo: courseRepo,
		enrollRepo: enrollRepo,
		progRepo:   progRepo,
		now:        time.Now,
	}
}

// GetUserCourseProgress は保存せず毎回レッスン行から集計する
func (s *progressService) GetUserCourseProgress(ctx context.Context, userID, courseID uint) (*model.CourseProgress, error) {
	return s.aggregate(ctx, s.db, userID, courseID)
}

func (s *progressService) aggregate(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.CourseProgress, error) {
	logger := middleware.GetLogger(ctx)

	statuses, err := s.progRepo.LessonStatuses(ctx, db, userID, courseID)
	if err != nil {
		logger.Error("Failed to aggregate course progress", "error", err, "user_id", userID, "course_id", courseID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load progress.", "", err)
	}
	return buildCourseProgress(userID, courseID, statuses), nil
}

func buildCourseProgress(userID, courseID uint, statuses []model.LessonStatus) *model.CourseProgress {
	completed := 0
	for _, st := range statuses {
		if st.Completed {
			completed++
		}
	}
	percent := 0.0
	if len(statuses) > 0 {
		percent = math.Round(float64(completed)/float64(len(statuses))*1000) / 10
	}
	if statuses == nil {
		statuses = []model.LessonStatus{}
	}
	return &model.CourseProgress{
		UserID:           userID,
		CourseID:         courseID,
		LessonsCompleted: completed,
		TotalLessons:     len(statuses),
		Percent:          percent,
		Lessons:          statuses,
	}
}

// CompleteLesson はレッスン修了を記録する (何度呼んでも同じ結果)。
// 全レッスン修了で受講ステータスを active → completed にする
func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID uint) (*model.CourseProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress *model.CourseProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lesson, err := s.courseRepo.FindLessonByID(ctx, tx, lessonID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LESSON_NOT_FOUND", "Lesson not found", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load lesson.", "", err)
		}

		enrollment, err := s.enrollRepo.FindByUserAndCourse(ctx, tx, userID, lesson.CourseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_ENROLLED", "You are not enrolled in this course", "", model.ErrForbidden)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load enrollment.", "", err)
		}
		if !enrollment.CountsTowardCompletion() {
			return model.NewAppError("ENROLLMENT_NOT_ACTIVE", "Your enrollment in this course is not active", "", model.ErrForbidden)
		}

		if err := s.progRepo.MarkCompleted(ctx, tx, userID, lessonID, s.now()); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record lesson completion.", "", err)
		}

		progress, err = s.aggregate(ctx, tx, userID, lesson.CourseID)
		if err != nil {
			return err
		}

		if enrollment.Status == model.EnrollmentActive &&
			progress.TotalLessons > 0 && progress.LessonsCompleted == progress.TotalLessons {
			if err := s.enrollRepo.UpdateStatus(ctx, tx, enrollment.ID, model.EnrollmentCompleted); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update enrollment.", "", err)
			}
			logger.Info("Course completed", "user_id", userID, "course_id", lesson.CourseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}
