//go:generate mockery --name EnrollmentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, enrollment *model.Enrollment) error
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.Enrollment, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, enrollmentID uint, status model.EnrollmentStatus) error
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, db *gorm.DB, enrollment *model.Enrollment) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate enrollment",
				"user_id", enrollment.UserID,
				"course_id", enrollment.CourseID,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating enrollment in DB", "error", result.Error, "course_id", enrollment.CourseID)
		return fmt.Errorf("gormEnrollmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment in DB",
			"error", result.Error,
			"user_id", userID,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByUserAndCourse: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, enrollmentID uint, status model.EnrollmentStatus) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.Enrollment{}).Where("id = ?", enrollmentID).Update("status", status)
	if result.Error != nil {
		logger.Error("Error updating enrollment status", "error", result.Error, "enrollment_id", enrollmentID)
		return fmt.Errorf("gormEnrollmentRepository.UpdateStatus: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
