package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"
	"go_4_elearning/internal/service"
)

func TestGrade(t *testing.T) {
	keys := func(correct ...int) []model.AnswerKey {
		out := make([]model.AnswerKey, 0, len(correct))
		for i, c := range correct {
			out = append(out, model.AnswerKey{ID: uint(i + 1), CorrectIndex: c})
		}
		return out
	}

	tests := []struct {
		name        string
		keys        []model.AnswerKey
		answers     []int
		wantCorrect int
		wantScore   float64
	}{
		{name: "5問中3問正解", keys: keys(0, 1, 2, 3, 0), answers: []int{0, 1, 2, 0, 1}, wantCorrect: 3, wantScore: 60},
		{name: "2問中1問正解", keys: keys(1, 0), answers: []int{1, 1}, wantCorrect: 1, wantScore: 50},
		{name: "3問中2問は小数第1位で丸める", keys: keys(0, 0, 0), answers: []int{0, 0, 1}, wantCorrect: 2, wantScore: 66.7},
		{name: "全問不正解", keys: keys(2, 2), answers: []int{0, 1}, wantCorrect: 0, wantScore: 0},
		{name: "設問0件は満点", keys: keys(), answers: []int{}, wantCorrect: 0, wantScore: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := service.Grade(tc.keys, tc.answers)

			assert.Equal(t, len(tc.keys), got.Total)
			assert.Equal(t, tc.wantCorrect, got.Correct)
			assert.Equal(t, tc.wantScore, got.Score)
			require.Len(t, got.Questions, len(tc.keys))
			for i, q := range got.Questions {
				assert.Equal(t, tc.keys[i].ID, q.ID)
				assert.Equal(t, tc.answers[i] == tc.keys[i].CorrectIndex, q.Correct)
			}
		})
	}
}

type quizFixture struct {
	db         *gorm.DB
	svc        service.QuizService
	instructor *model.User
	student    *model.User
	course     *model.Course
	quiz       *model.QuizView
}

// newQuizFixture は公開済み講座に 2 問 (正解 1, 0) の小テストを作る
func newQuizFixture(t *testing.T, published bool) *quizFixture {
	t.Helper()
	db := newTestDB(t)
	f := &quizFixture{db: db}
	f.instructor = seedUser(t, db, "instructor", model.RoleInstructor)
	f.student = seedUser(t, db, "student", model.RoleStudent)
	f.course, _ = seedCourse(t, db, f.instructor.ID, published, 1)
	f.svc = service.NewQuizService(db, repository.NewGormQuizRepository(), repository.NewGormCourseRepository(), repository.NewGormEnrollmentRepository())

	quiz, err := f.svc.CreateQuiz(context.Background(), f.course.ID, &model.CreateQuizRequest{
		Title: "確認テスト",
		Questions: []model.CreateQuestionInput{
			{Prompt: "Q1", Choices: []string{"a", "b", "c"}, CorrectIndex: intPtr(1)},
			{Prompt: "Q2", Choices: []string{"a", "b"}, CorrectIndex: intPtr(0)},
		},
	}, &model.Identity{ID: f.instructor.ID, Role: model.RoleInstructor})
	require.NoError(t, err)
	f.quiz = quiz
	return f
}

func intPtr(v int) *int {
	return &v
}

func TestQuizService_CreateAndGetQuiz(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)

	require.Len(t, f.quiz.Questions, 2)
	assert.Equal(t, 1, f.quiz.Questions[0].Position)
	assert.Equal(t, 2, f.quiz.Questions[1].Position)

	got, err := f.svc.GetQuiz(ctx, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "確認テスト", got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Q1", got.Questions[0].Prompt)
	assert.Equal(t, []string{"a", "b", "c"}, got.Questions[0].Choices)

	_, err = f.svc.GetQuiz(ctx, 9999)
	assert.Equal(t, model.QuizErrNotFound, model.Code(err))
}

func TestQuizService_CreateQuiz_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)

	t.Run("correct_index が範囲外", func(t *testing.T) {
		_, err := f.svc.CreateQuiz(ctx, f.course.ID, &model.CreateQuizRequest{
			Title:     "bad",
			Questions: []model.CreateQuestionInput{{Prompt: "Q", Choices: []string{"a", "b"}, CorrectIndex: intPtr(2)}},
		}, &model.Identity{ID: f.instructor.ID, Role: model.RoleInstructor})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("他の講師の講座", func(t *testing.T) {
		_, err := f.svc.CreateQuiz(ctx, f.course.ID, &model.CreateQuizRequest{Title: "x"},
			&model.Identity{ID: f.instructor.ID + 100, Role: model.RoleInstructor})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrForbidden))
	})
}

func TestQuizService_SubmitQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("採点して保存する", func(t *testing.T) {
		f := newQuizFixture(t, true)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentActive)

		result, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 1}, f.student.ID)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Correct)
		assert.Equal(t, 50.0, result.Score)
		assert.True(t, result.Questions[0].Correct)
		assert.False(t, result.Questions[1].Correct)

		latest, err := f.svc.GetLatestSubmission(ctx, f.quiz.ID, f.student.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, 50.0, latest.Score)
		assert.Equal(t, []int{1, 1}, []int(latest.Answers))
	})

	t.Run("修了済みの受講でも提出できる", func(t *testing.T) {
		f := newQuizFixture(t, true)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentCompleted)

		result, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 0}, f.student.ID)

		require.NoError(t, err)
		assert.Equal(t, 100.0, result.Score)
	})

	t.Run("非公開の講座", func(t *testing.T) {
		f := newQuizFixture(t, false)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentActive)

		_, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 0}, f.student.ID)

		require.Error(t, err)
		assert.Equal(t, model.QuizErrForbidden, model.Code(err))
		assert.Equal(t, "Course is not published", err.Error())
	})

	t.Run("未受講", func(t *testing.T) {
		f := newQuizFixture(t, true)

		_, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 0}, f.student.ID)

		require.Error(t, err)
		assert.Equal(t, model.QuizErrNotEnrolled, model.Code(err))
	})

	t.Run("返金済み", func(t *testing.T) {
		f := newQuizFixture(t, true)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentRefunded)

		_, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 0}, f.student.ID)

		assert.Equal(t, model.QuizErrNotEnrolled, model.Code(err))
	})

	t.Run("解答数が合わなければ保存しない", func(t *testing.T) {
		f := newQuizFixture(t, true)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentActive)

		_, err := f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1}, f.student.ID)

		require.Error(t, err)
		assert.Equal(t, model.QuizErrInvalidAnswersLength, model.Code(err))
		assert.True(t, errors.Is(err, model.ErrInvalidInput))

		var count int64
		require.NoError(t, f.db.Model(&model.QuizSubmission{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("存在しない小テスト", func(t *testing.T) {
		f := newQuizFixture(t, true)

		_, err := f.svc.SubmitQuiz(ctx, 9999, []int{}, f.student.ID)

		assert.Equal(t, model.QuizErrNotFound, model.Code(err))
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})

	t.Run("設問0件の小テストは満点", func(t *testing.T) {
		f := newQuizFixture(t, true)
		seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentActive)
		empty, err := f.svc.CreateQuiz(ctx, f.course.ID, &model.CreateQuizRequest{Title: "empty"},
			&model.Identity{ID: f.instructor.ID, Role: model.RoleInstructor})
		require.NoError(t, err)

		result, err := f.svc.SubmitQuiz(ctx, empty.ID, []int{}, f.student.ID)

		require.NoError(t, err)
		assert.Equal(t, 100.0, result.Score)
	})
}

func TestQuizService_Submissions(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	seedEnrollment(t, f.db, f.student.ID, f.course.ID, model.EnrollmentActive)

	latest, err := f.svc.GetLatestSubmission(ctx, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{0, 1}, f.student.ID)
	require.NoError(t, err)
	_, err = f.svc.SubmitQuiz(ctx, f.quiz.ID, []int{1, 0}, f.student.ID)
	require.NoError(t, err)

	latest, err = f.svc.GetLatestSubmission(ctx, f.quiz.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, latest.Score)

	t.Run("担当講師は新しい順に一覧できる", func(t *testing.T) {
		rows, err := f.svc.ListSubmissions(ctx, f.quiz.ID, f.instructor.ID, model.RoleInstructor)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 100.0, rows[0].Score)
		assert.Equal(t, 0.0, rows[1].Score)
		assert.Equal(t, f.student.Name, rows[0].UserName)
		assert.Equal(t, f.student.Email, rows[0].UserEmail)
	})

	t.Run("admin も一覧できる", func(t *testing.T) {
		rows, err := f.svc.ListSubmissions(ctx, f.quiz.ID, 424242, model.RoleAdmin)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("他の講師は不可", func(t *testing.T) {
		_, err := f.svc.ListSubmissions(ctx, f.quiz.ID, f.instructor.ID+1, model.RoleInstructor)

		require.Error(t, err)
		assert.Equal(t, "You can only view submissions for your own courses", err.Error())
		assert.True(t, errors.Is(err, model.ErrForbidden))
	})
}
