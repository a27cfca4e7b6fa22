// internal/model/certificate.go
package model

import (
	"time"
)

// Certificate は修了証。(user_id, course_id) とコードはそれぞれ一意で、発行後は更新しない
type Certificate struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uq_certificates_user_course" json:"user_id"`
	CourseID uint      `gorm:"not null;uniqueIndex:uq_certificates_user_course" json:"course_id"`
	Code     string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_certificates_code" json:"code"`
	IssuedAt time.Time `gorm:"not null" json:"issued_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// 修了判定の理由コード
const (
	ReasonEnrollmentNotFound     = "ENROLLMENT_NOT_FOUND"
	ReasonEnrollmentNotActive    = "ENROLLMENT_NOT_ACTIVE"
	ReasonNoLessonsInCourse      = "NO_LESSONS_IN_COURSE"
	ReasonNotAllLessonsCompleted = "NOT_ALL_LESSONS_COMPLETED"
)

// EligibilityResult は修了判定の結果。Eligible のときは Reason を返さない
type EligibilityResult struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// CertificateHolder / CertificateCourse は検証APIで公開してよい最小限の情報
type CertificateHolder struct {
	Name string `json:"name"`
}

type CertificateCourse struct {
	Title string `json:"title"`
}

// VerificationResult は公開検証APIのレスポンス。内部IDは含めない
type VerificationResult struct {
	Valid    bool               `json:"valid"`
	User     *CertificateHolder `json:"user,omitempty"`
	Course   *CertificateCourse `json:"course,omitempty"`
	IssuedAt *time.Time         `json:"issued_at,omitempty"`
}

// CertificateVerificationRow は code で certificates / users / courses を結合した行
type CertificateVerificationRow struct {
	UserName    string
	CourseTitle string
	IssuedAt    time.Time
}

// 修了証発行リクエストDTO (講師/管理者用)
type IssueCertificateRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}
