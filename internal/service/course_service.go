package service

import (
	"context"
	"errors"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"

	"gorm.io/gorm"
)

//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
type CourseService interface {
	CreateCourse(ctx context.Context, req *model.CreateCourseRequest, requester *model.Identity) (*model.Course, error)
	GetCourse(ctx context.Context, courseID uint) (*model.Course, error)
	PublishCourse(ctx context.Context, courseID uint, requester *model.Identity) (*model.Course, error)
	AddLesson(ctx context.Context, courseID uint, req *model.CreateLessonRequest, requester *model.Identity) (*model.Lesson, error)
	Enroll(ctx context.Context, courseID, userID uint) (*model.Enrollment, error)
}

type courseService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
	enrollRepo repository.EnrollmentRepository
}

func NewCourseService(db *gorm.DB, courseRepo repository.CourseRepository, enrollRepo repository.EnrollmentRepository) CourseService {
	return &courseService{
		db:         db,
		courseRepo: courseRepo,
		enrollRepo: enrollRepo,
	}
}

func courseNotFound() *model.AppError {
	return model.NewAppError("COURSE_NOT_FOUND", "Course not found", "", model.ErrNotFound)
}

func (s *courseService) CreateCourse(ctx context.Context, req *model.CreateCourseRequest, requester *model.Identity) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	if !IsRole(requester.Role, model.RoleInstructor, model.RoleAdmin) {
		return nil, model.NewAppError("FORBIDDEN", "Only instructors can create courses", "", model.ErrForbidden)
	}

	course := &model.Course{
		InstructorID: requester.ID,
		Title:        req.Title,
		Description:  req.Description,
	}
	if err := s.courseRepo.Create(ctx, s.db, course); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create course.", "", err)
	}

	logger.Info("Course created", "course_id", course.ID, "instructor_id", course.InstructorID)
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByIDWithLessons(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load course.", "", err)
	}
	return course, nil
}

// loadManagedCourse は講座を取得し、requester が管理できるか確認する
func (s *courseService) loadManagedCourse(ctx context.Context, db *gorm.DB, courseID uint, requester *model.Identity) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load course.", "", err)
	}
	if !CanManageCourse(requester.Role, requester.ID, course.InstructorID) {
		return nil, model.NewAppError("FORBIDDEN", "You can only manage your own courses", "", model.ErrForbidden)
	}
	return course, nil
}

func (s *courseService) PublishCourse(ctx context.Context, courseID uint, requester *model.Identity) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.loadManagedCourse(ctx, s.db, courseID, requester)
	if err != nil {
		return nil, err
	}
	if course.Published {
		return course, nil
	}
	if err := s.courseRepo.SetPublished(ctx, s.db, courseID, true); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to publish course.", "", err)
	}
	course.Published = true

	logger.Info("Course published", "course_id", courseID)
	return course, nil
}

// AddLesson は position を講座内の末尾に自動採番する
func (s *courseService) AddLesson(ctx context.Context, courseID uint, req *model.CreateLessonRequest, requester *model.Identity) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lesson *model.Lesson

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadManagedCourse(ctx, tx, courseID, requester); err != nil {
			return err
		}
		position, err := s.courseRepo.NextLessonPosition(ctx, tx, courseID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to add lesson.", "", err)
		}
		l := &model.Lesson{
			CourseID: courseID,
			Title:    req.Title,
			Content:  req.Content,
			Position: position,
		}
		if err := s.courseRepo.CreateLesson(ctx, tx, l); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to add lesson.", "", err)
		}
		lesson = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Lesson added", "course_id", courseID, "lesson_id", lesson.ID, "position", lesson.Position)
	return lesson, nil
}

// Enroll は公開済みの講座のみ受け付ける。二重登録は 409
func (s *courseService) Enroll(ctx context.Context, courseID, userID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load course.", "", err)
	}
	if !course.Published {
		return nil, model.NewAppError("COURSE_NOT_PUBLISHED", "Course is not published", "", model.ErrForbidden)
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentActive,
	}
	if err := s.enrollRepo.Create(ctx, s.db, enrollment); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("ALREADY_ENROLLED", "Already enrolled in this course", "", model.ErrConflict)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to enroll.", "", err)
	}

	logger.Info("User enrolled", "course_id", courseID, "user_id", userID)
	return enrollment, nil
}
