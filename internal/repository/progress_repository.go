// internal/repository/progress_repository.go
//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// LessonStatuses は講座の全レッスンに対するユーザーの修了フラグを position 順で返す
	LessonStatuses(ctx context.Context, db *gorm.DB, userID, courseID uint) ([]model.LessonStatus, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, userID, lessonID uint, completedAt time.Time) error // トランザクション対応
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) LessonStatuses(ctx context.Context, db *gorm.DB, userID, courseID uint) ([]model.LessonStatus, error) {
	logger := middleware.GetLogger(ctx)
	statuses := []model.LessonStatus{}

	// 修了行がないレッスンも未修了として数えるため LEFT JOIN
	result := db.WithContext(ctx).
		Table("lessons").
		Select("lessons.id AS lesson_id, lessons.title AS title, lessons.position AS position, COALESCE(lp.completed, FALSE) AS completed").
		Joins("LEFT JOIN lesson_progress lp ON lp.lesson_id = lessons.id AND lp.user_id = ?", userID).
		Where("lessons.course_id = ?", courseID).
		Order("lessons.position ASC, lessons.id ASC").
		Scan(&statuses)
	if result.Error != nil {
		logger.Error("Error aggregating lesson progress",
			"error", result.Error,
			"user_id", userID,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormProgressRepository.LessonStatuses: %w", result.Error)
	}
	return statuses, nil
}

// MarkCompleted は (user, lesson) の修了行を作る。既にあれば completed を立てるだけで completed_at は最初の値を残す
func (r *gormProgressRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, userID, lessonID uint, completedAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	progress := &model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &completedAt,
	}
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": true}),
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error upserting lesson progress",
			"error", result.Error,
			"user_id", userID,
			"lesson_id", lessonID,
		)
		return fmt.Errorf("gormProgressRepository.MarkCompleted: %w", result.Error)
	}
	return nil
}
