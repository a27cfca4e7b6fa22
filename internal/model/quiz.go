// internal/model/quiz.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz は講座に属する小テスト
type Quiz struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion は正解キーを持つ設問。CorrectIndex は choices への0始まりの添字
type QuizQuestion struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	QuizID       uint                        `gorm:"not null;index" json:"quiz_id"`
	Prompt       string                      `gorm:"not null" json:"prompt"`
	Choices      datatypes.JSONSlice[string] `gorm:"not null" json:"choices"`
	CorrectIndex int                         `gorm:"not null" json:"-"`
	Position     int                         `gorm:"not null;default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizSubmission は採点済みの解答1回分。追記のみで更新しない
type QuizSubmission struct {
	ID        uint                     `gorm:"primaryKey" json:"id"`
	QuizID    uint                     `gorm:"not null;index:idx_quiz_submissions_quiz_user" json:"quiz_id"`
	UserID    uint                     `gorm:"not null;index:idx_quiz_submissions_quiz_user" json:"user_id"`
	Answers   datatypes.JSONSlice[int] `gorm:"not null" json:"answers"`
	Score     float64                  `gorm:"not null" json:"score"`
	CreatedAt time.Time                `gorm:"index" json:"created_at"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// QuizWithCourse は採点前のゲート判定に使う小テスト + 講座の公開状態
type QuizWithCourse struct {
	QuizID       uint
	CourseID     uint
	InstructorID uint
	Published    bool
}

// AnswerKey は採点に使う正解キー (id と correct_index のみ)
type AnswerKey struct {
	ID           uint
	CorrectIndex int
}

// SubmissionWithUser は講師向け一覧の行 (提出者の名前とメールを結合)
type SubmissionWithUser struct {
	ID        uint                     `json:"id"`
	QuizID    uint                     `json:"quiz_id"`
	UserID    uint                     `json:"user_id"`
	Answers   datatypes.JSONSlice[int] `json:"answers"`
	Score     float64                  `json:"score"`
	CreatedAt time.Time                `json:"created_at"`
	UserName  string                   `json:"user_name"`
	UserEmail string                   `json:"user_email"`
}

// 採点エラーの種別
const (
	QuizErrNotFound             = "NOT_FOUND"
	QuizErrForbidden            = "FORBIDDEN"
	QuizErrNotEnrolled          = "NOT_ENROLLED"
	QuizErrInvalidAnswersLength = "INVALID_ANSWERS_LENGTH"
)

// QuestionResult は設問ごとの正誤。正解の添字は含めない
type QuestionResult struct {
	ID      uint `json:"id"`
	Correct bool `json:"correct"`
}

// GradeResult は採点結果のレスポンス
type GradeResult struct {
	Total     int              `json:"total"`
	Correct   int              `json:"correct"`
	Score     float64          `json:"score"`
	Questions []QuestionResult `json:"questions"`
}

// 小テスト作成リクエストDTO
type CreateQuizRequest struct {
	Title     string                `json:"title" validate:"required,min=1,max=200"`
	Questions []CreateQuestionInput `json:"questions" validate:"dive"`
}

type CreateQuestionInput struct {
	Prompt       string   `json:"prompt" validate:"required"`
	Choices      []string `json:"choices" validate:"required,min=2,dive,required"`
	CorrectIndex *int     `json:"correct_index" validate:"required,gte=0"`
}

// 解答提出リクエストDTO
type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required,dive,gte=0"`
}

// QuizView は受講者向けの小テスト表示。正解キーは含めない
type QuizView struct {
	ID        uint               `json:"id"`
	CourseID  uint               `json:"course_id"`
	Title     string             `json:"title"`
	Questions []QuizQuestionView `json:"questions"`
}

type QuizQuestionView struct {
	ID       uint     `json:"id"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices"`
	Position int      `json:"position"`
}
