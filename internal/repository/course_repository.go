//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"

	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, db *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error)
	FindByIDWithLessons(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error)
	SetPublished(ctx context.Context, db *gorm.DB, courseID uint, published bool) error
	CreateLesson(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error
	FindLessonByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.Lesson, error)
	NextLessonPosition(ctx context.Context, db *gorm.DB, courseID uint) (int, error)
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) Create(ctx context.Context, db *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(course)
	if result.Error != nil {
		logger.Error("Error creating course in DB", "error", result.Error, "instructor_id", course.InstructorID)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).First(&course, courseID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by ID in DB", "error", result.Error, "course_id", courseID)
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindByIDWithLessons(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		}).
		First(&course, courseID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course with lessons in DB", "error", result.Error, "course_id", courseID)
		return nil, fmt.Errorf("gormCourseRepository.FindByIDWithLessons: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) SetPublished(ctx context.Context, db *gorm.DB, courseID uint, published bool) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.Course{}).Where("id = ?", courseID).Update("published", published)
	if result.Error != nil {
		logger.Error("Error updating course published flag", "error", result.Error, "course_id", courseID)
		return fmt.Errorf("gormCourseRepository.SetPublished: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) CreateLesson(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating lesson in DB", "error", result.Error, "course_id", lesson.CourseID)
		return fmt.Errorf("gormCourseRepository.CreateLesson: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindLessonByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lesson model.Lesson
	result := db.WithContext(ctx).First(&lesson, lessonID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding lesson by ID in DB", "error", result.Error, "lesson_id", lessonID)
		return nil, fmt.Errorf("gormCourseRepository.FindLessonByID: %w", result.Error)
	}
	return &lesson, nil
}

// NextLessonPosition は講座内の最大 position + 1 を返す (レッスンがなければ 1)
func (r *gormCourseRepository) NextLessonPosition(ctx context.Context, db *gorm.DB, courseID uint) (int, error) {
	logger := middleware.GetLogger(ctx)
	var maxPos int
	result := db.WithContext(ctx).Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos)
	if result.Error != nil {
		logger.Error("Error computing next lesson position", "error", result.Error, "course_id", courseID)
		return 0, fmt.Errorf("gormCourseRepository.NextLessonPosition: %w", result.Error)
	}
	return maxPos + 1, nil
}
