// internal/model/course.go
package model

import (
	"time"
)

// Course は講座
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Published    bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Lesson は講座内のレッスン。Position 順に並ぶ
type Lesson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// 受講ステータス
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentRefunded  EnrollmentStatus = "refunded"
)

// Enrollment はユーザーと講座の受講関係。(user_id, course_id) で一意
type Enrollment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;uniqueIndex:uq_enrollment_user_course" json:"user_id"`
	CourseID  uint             `gorm:"not null;uniqueIndex:uq_enrollment_user_course" json:"course_id"`
	Status    EnrollmentStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// CountsTowardCompletion は修了判定の対象になるステータスかどうか (返金済みは対象外)
func (e *Enrollment) CountsTowardCompletion() bool {
	return e.Status == EnrollmentActive || e.Status == EnrollmentCompleted
}

// 講座作成リクエストDTO
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// レッスン追加リクエストDTO
type CreateLessonRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content"`
}
