// internal/model/progress.go
package model

import (
	"time"
)

// LessonProgress はレッスン単位の修了記録。(user_id, lesson_id) で一意
type LessonProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:uq_lesson_progress_user_lesson" json:"user_id"`
	LessonID    uint       `gorm:"not null;uniqueIndex:uq_lesson_progress_user_lesson;index" json:"lesson_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// LessonStatus は集計結果に含まれるレッスンごとの修了フラグ
type LessonStatus struct {
	LessonID  uint   `json:"lesson_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	Completed bool   `json:"completed"`
}

// CourseProgress は (user, course) の進捗集計。保存はせず都度計算する
type CourseProgress struct {
	UserID           uint           `json:"user_id"`
	CourseID         uint           `json:"course_id"`
	LessonsCompleted int            `json:"lessons_completed"`
	TotalLessons     int            `json:"total_lessons"`
	Percent          float64        `json:"percent"`
	Lessons          []LessonStatus `json:"lessons"`
}
