package service

import (
	"context"
	"errors"
	"math"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
type QuizService interface {
	CreateQuiz(ctx context.Context, courseID uint, req *model.CreateQuizRequest, requester *model.Identity) (*model.QuizView, error)
	GetQuiz(ctx context.Context, quizID uint) (*model.QuizView, error)
	SubmitQuiz(ctx context.Context, quizID uint, answers []int, userID uint) (*model.GradeResult, error)
	GetLatestSubmission(ctx context.Context, quizID, userID uint) (*model.QuizSubmission, error)
	ListSubmissions(ctx context.Context, quizID, requesterID uint, requesterRole string) ([]model.SubmissionWithUser, error)
}

type quizService struct {
	db         *gorm.DB
	quizRepo   repository.QuizRepository
	courseRepo repository.CourseRepository
	enrollRepo repository.EnrollmentRepository
}

func NewQuizService(db *gorm.DB, quizRepo repository.QuizRepository, courseRepo repository.CourseRepository, enrollRepo repository.EnrollmentRepository) QuizService {
	return &quizService{
		db:         db,
		quizRepo:   quizRepo,
		courseRepo: courseRepo,
		enrollRepo: enrollRepo,
	}
}

func quizNotFound() *model.AppError {
	return model.NewAppError(model.QuizErrNotFound, "Quiz not found", "", model.ErrNotFound)
}

func (s *quizService) CreateQuiz(ctx context.Context, courseID uint, req *model.CreateQuizRequest, requester *model.Identity) (*model.QuizView, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "Course not found", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load course.", "", err)
	}
	if !CanManageCourse(requester.Role, requester.ID, course.InstructorID) {
		return nil, model.NewAppError("FORBIDDEN", "You can only manage quizzes for your own courses", "", model.ErrForbidden)
	}

	quiz := &model.Quiz{CourseID: courseID, Title: req.Title}
	for i, q := range req.Questions {
		if q.CorrectIndex == nil || *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Choices) {
			return nil, model.NewAppError("VALIDATION_ERROR", "correct_index must point at one of the choices", "correct_index", model.ErrInvalidInput)
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Prompt:       q.Prompt,
			Choices:      datatypes.NewJSONSlice(q.Choices),
			CorrectIndex: *q.CorrectIndex,
			Position:     i + 1,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.quizRepo.Create(ctx, tx, quiz)
	})
	if err != nil {
		logger.Error("Failed to create quiz", "error", err, "course_id", courseID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create quiz.", "", err)
	}

	logger.Info("Quiz created", "quiz_id", quiz.ID, "course_id", courseID, "questions", len(quiz.Questions))
	return newQuizView(quiz, quiz.Questions), nil
}

// GetQuiz は受講者向け。正解キーは含めない
func (s *quizService) GetQuiz(ctx context.Context, quizID uint) (*model.QuizView, error) {
	quiz, err := s.quizRepo.FindByID(ctx, s.db, quizID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, quizNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz.", "", err)
	}
	questions, err := s.quizRepo.FindQuestions(ctx, s.db, quizID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz questions.", "", err)
	}
	return newQuizView(quiz, questions), nil
}

func newQuizView(quiz *model.Quiz, questions []model.QuizQuestion) *model.QuizView {
	view := &model.QuizView{
		ID:        quiz.ID,
		CourseID:  quiz.CourseID,
		Title:     quiz.Title,
		Questions: make([]model.QuizQuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, model.QuizQuestionView{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Choices:  []string(q.Choices),
			Position: q.Position,
		})
	}
	return view
}

// SubmitQuiz は採点して提出を追記する。
// 公開状態・受講状態のゲートと INSERT を同じトランザクションで行う
func (s *quizService) SubmitQuiz(ctx context.Context, quizID uint, answers []int, userID uint) (*model.GradeResult, error) {
	logger := middleware.GetLogger(ctx).With("quiz_id", quizID, "user_id", userID)
	var result *model.GradeResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.quizRepo.FindWithCourse(ctx, tx, quizID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return quizNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz.", "", err)
		}
		if !quiz.Published {
			return model.NewAppError(model.QuizErrForbidden, "Course is not published", "", model.ErrForbidden)
		}

		enrollment, err := s.enrollRepo.FindByUserAndCourse(ctx, tx, userID, quiz.CourseID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load enrollment.", "", err)
		}
		if enrollment == nil || !enrollment.CountsTowardCompletion() {
			return model.NewAppError(model.QuizErrNotEnrolled, "You are not enrolled in this course", "", model.ErrForbidden)
		}

		keys, err := s.quizRepo.FindAnswerKeys(ctx, tx, quizID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz questions.", "", err)
		}
		if len(answers) != len(keys) {
			return model.NewAppError(model.QuizErrInvalidAnswersLength, "Answers length does not match the number of questions", "answers", model.ErrInvalidInput)
		}

		result = Grade(keys, answers)

		submission := &model.QuizSubmission{
			QuizID:  quizID,
			UserID:  userID,
			Answers: datatypes.NewJSONSlice(answers),
			Score:   result.Score,
		}
		if err := s.quizRepo.CreateSubmission(ctx, tx, submission); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save submission.", "", err)
		}
		return nil
	})
	if err != nil {
		logger.Info("Quiz submission rejected", "code", model.Code(err), "error", err)
		return nil, err
	}

	logger.Info("Quiz graded", "score", result.Score, "correct", result.Correct, "total", result.Total)
	return result, nil
}

// Grade は answers を設問順に正解キーと突き合わせる。len(answers) == len(keys) が前提。
// 設問0件は 100 点とする
func Grade(keys []model.AnswerKey, answers []int) *model.GradeResult {
	result := &model.GradeResult{
		Total:     len(keys),
		Questions: make([]model.QuestionResult, 0, len(keys)),
	}
	for i, key := range keys {
		ok := answers[i] == key.CorrectIndex
		if ok {
			result.Correct++
		}
		result.Questions = append(result.Questions, model.QuestionResult{ID: key.ID, Correct: ok})
	}
	if result.Total == 0 {
		result.Score = 100
		return result
	}
	result.Score = math.Round(float64(result.Correct)*1000/float64(result.Total)) / 10
	return result
}

// GetLatestSubmission は提出がなければ nil, nil
func (s *quizService) GetLatestSubmission(ctx context.Context, quizID, userID uint) (*model.QuizSubmission, error) {
	submission, err := s.quizRepo.FindLatestSubmission(ctx, s.db, quizID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load submission.", "", err)
	}
	return submission, nil
}

// ListSubmissions は担当講師か admin のみ。新しい順
func (s *quizService) ListSubmissions(ctx context.Context, quizID, requesterID uint, requesterRole string) ([]model.SubmissionWithUser, error) {
	logger := middleware.GetLogger(ctx)

	quiz, err := s.quizRepo.FindWithCourse(ctx, s.db, quizID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, quizNotFound()
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz.", "", err)
	}
	if !CanManageCourse(requesterRole, requesterID, quiz.InstructorID) {
		logger.Warn("Submission list rejected", "quiz_id", quizID, "requester_id", requesterID, "role", requesterRole)
		return nil, model.NewAppError(model.QuizErrForbidden, "You can only view submissions for your own courses", "", model.ErrForbidden)
	}

	rows, err := s.quizRepo.ListSubmissionsWithUser(ctx, s.db, quizID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list submissions.", "", err)
	}
	return rows, nil
}
