//go:generate mockery --name QuizRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"

	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *model.Quiz) error // Questions も一緒に作成
	FindByID(ctx context.Context, db *gorm.DB, quizID uint) (*model.Quiz, error)
	FindWithCourse(ctx context.Context, db *gorm.DB, quizID uint) (*model.QuizWithCourse, error)
	FindQuestions(ctx context.Context, db *gorm.DB, quizID uint) ([]model.QuizQuestion, error)
	FindAnswerKeys(ctx context.Context, db *gorm.DB, quizID uint) ([]model.AnswerKey, error)
	CreateSubmission(ctx context.Context, tx *gorm.DB, submission *model.QuizSubmission) error
	FindLatestSubmission(ctx context.Context, db *gorm.DB, quizID, userID uint) (*model.QuizSubmission, error)
	ListSubmissionsWithUser(ctx context.Context, db *gorm.DB, quizID uint) ([]model.SubmissionWithUser, error)
}

type gormQuizRepository struct{}

func NewGormQuizRepository() QuizRepository {
	return &gormQuizRepository{}
}

func (r *gormQuizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *model.Quiz) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(quiz)
	if result.Error != nil {
		logger.Error("Error creating quiz in DB", "error", result.Error, "course_id", quiz.CourseID)
		return fmt.Errorf("gormQuizRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormQuizRepository) FindByID(ctx context.Context, db *gorm.DB, quizID uint) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)
	var quiz model.Quiz
	result := db.WithContext(ctx).First(&quiz, quizID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding quiz by ID in DB", "error", result.Error, "quiz_id", quizID)
		return nil, fmt.Errorf("gormQuizRepository.FindByID: %w", result.Error)
	}
	return &quiz, nil
}

// FindWithCourse は小テストと講座の担当講師・公開状態をまとめて取る
func (r *gormQuizRepository) FindWithCourse(ctx context.Context, db *gorm.DB, quizID uint) (*model.QuizWithCourse, error) {
	logger := middleware.GetLogger(ctx)
	var rows []model.QuizWithCourse
	result := db.WithContext(ctx).
		Table("quizzes").
		Select("quizzes.id AS quiz_id, quizzes.course_id AS course_id, courses.instructor_id AS instructor_id, courses.published AS published").
		Joins("JOIN courses ON courses.id = quizzes.course_id").
		Where("quizzes.id = ?", quizID).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error finding quiz with course", "error", result.Error, "quiz_id", quizID)
		return nil, fmt.Errorf("gormQuizRepository.FindWithCourse: %w", result.Error)
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return &rows[0], nil
}

func (r *gormQuizRepository) FindQuestions(ctx context.Context, db *gorm.DB, quizID uint) ([]model.QuizQuestion, error) {
	logger := middleware.GetLogger(ctx)
	questions := []model.QuizQuestion{}
	result := db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("position ASC, id ASC").Find(&questions)
	if result.Error != nil {
		logger.Error("Error finding quiz questions", "error", result.Error, "quiz_id", quizID)
		return nil, fmt.Errorf("gormQuizRepository.FindQuestions: %w", result.Error)
	}
	return questions, nil
}

// FindAnswerKeys は採点用に id と correct_index だけを設問順で返す
func (r *gormQuizRepository) FindAnswerKeys(ctx context.Context, db *gorm.DB, quizID uint) ([]model.AnswerKey, error) {
	logger := middleware.GetLogger(ctx)
	keys := []model.AnswerKey{}
	result := db.WithContext(ctx).
		Model(&model.QuizQuestion{}).
		Select("id, correct_index").
		Where("quiz_id = ?", quizID).
		Order("position ASC, id ASC").
		Scan(&keys)
	if result.Error != nil {
		logger.Error("Error finding answer keys", "error", result.Error, "quiz_id", quizID)
		return nil, fmt.Errorf("gormQuizRepository.FindAnswerKeys: %w", result.Error)
	}
	return keys, nil
}

func (r *gormQuizRepository) CreateSubmission(ctx context.Context, tx *gorm.DB, submission *model.QuizSubmission) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(submission)
	if result.Error != nil {
		logger.Error("Error creating quiz submission",
			"error", result.Error,
			"quiz_id", submission.QuizID,
			"user_id", submission.UserID,
		)
		return fmt.Errorf("gormQuizRepository.CreateSubmission: %w", result.Error)
	}
	return nil
}

func (r *gormQuizRepository) FindLatestSubmission(ctx context.Context, db *gorm.DB, quizID, userID uint) (*model.QuizSubmission, error) {
	logger := middleware.GetLogger(ctx)
	var submission model.QuizSubmission
	result := db.WithContext(ctx).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at DESC, id DESC").
		Take(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding latest submission",
			"error", result.Error,
			"quiz_id", quizID,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormQuizRepository.FindLatestSubmission: %w", result.Error)
	}
	return &submission, nil
}

func (r *gormQuizRepository) ListSubmissionsWithUser(ctx context.Context, db *gorm.DB, quizID uint) ([]model.SubmissionWithUser, error) {
	logger := middleware.GetLogger(ctx)
	rows := []model.SubmissionWithUser{}
	result := db.WithContext(ctx).
		Table("quiz_submissions").
		Select("quiz_submissions.id AS id, quiz_submissions.quiz_id AS quiz_id, quiz_submissions.user_id AS user_id, " +
			"quiz_submissions.answers AS answers, quiz_submissions.score AS score, quiz_submissions.created_at AS created_at, " +
			"users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = quiz_submissions.user_id").
		Where("quiz_submissions.quiz_id = ?", quizID).
		Order("quiz_submissions.created_at DESC, quiz_submissions.id DESC").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error listing quiz submissions", "error", result.Error, "quiz_id", quizID)
		return nil, fmt.Errorf("gormQuizRepository.ListSubmissionsWithUser: %w", result.Error)
	}
	return rows, nil
}
