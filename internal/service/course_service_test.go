package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"
	"go_4_elearning/internal/service"
)

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", model.RoleInstructor)
	other := seedUser(t, db, "other", model.RoleInstructor)
	student := seedUser(t, db, "student", model.RoleStudent)

	owner := &model.Identity{ID: instructor.ID, Role: model.RoleInstructor}
	svc := service.NewCourseService(db, repository.NewGormCourseRepository(), repository.NewGormEnrollmentRepository())

	course, err := svc.CreateCourse(ctx, &model.CreateCourseRequest{Title: "Go 入門", Description: "基礎から"}, owner)
	require.NoError(t, err)
	assert.Equal(t, instructor.ID, course.InstructorID)
	assert.False(t, course.Published)

	t.Run("受講者は講座を作れない", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, &model.CreateCourseRequest{Title: "x"}, &model.Identity{ID: student.ID, Role: model.RoleStudent})

		require.Error(t, err)
		assert.Equal(t, "Only instructors can create courses", err.Error())
		assert.True(t, errors.Is(err, model.ErrForbidden))
	})

	t.Run("レッスンは末尾に採番される", func(t *testing.T) {
		first, err := svc.AddLesson(ctx, course.ID, &model.CreateLessonRequest{Title: "変数"}, owner)
		require.NoError(t, err)
		second, err := svc.AddLesson(ctx, course.ID, &model.CreateLessonRequest{Title: "関数"}, owner)
		require.NoError(t, err)

		assert.Equal(t, 1, first.Position)
		assert.Equal(t, 2, second.Position)

		got, err := svc.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, got.Lessons, 2)
		assert.Equal(t, "変数", got.Lessons[0].Title)
	})

	t.Run("他の講師は管理できない", func(t *testing.T) {
		intruder := &model.Identity{ID: other.ID, Role: model.RoleInstructor}

		_, err := svc.AddLesson(ctx, course.ID, &model.CreateLessonRequest{Title: "x"}, intruder)
		assert.True(t, errors.Is(err, model.ErrForbidden))

		_, err = svc.PublishCourse(ctx, course.ID, intruder)
		assert.Equal(t, "You can only manage your own courses", err.Error())
	})

	t.Run("非公開の講座には登録できない", func(t *testing.T) {
		_, err := svc.Enroll(ctx, course.ID, student.ID)

		assert.Equal(t, "COURSE_NOT_PUBLISHED", model.Code(err))
	})

	t.Run("公開は何度呼んでも同じ", func(t *testing.T) {
		published, err := svc.PublishCourse(ctx, course.ID, owner)
		require.NoError(t, err)
		assert.True(t, published.Published)

		published, err = svc.PublishCourse(ctx, course.ID, &model.Identity{ID: 999, Role: model.RoleAdmin})
		require.NoError(t, err)
		assert.True(t, published.Published)
	})

	t.Run("登録と二重登録", func(t *testing.T) {
		enrollment, err := svc.Enroll(ctx, course.ID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, model.EnrollmentActive, enrollment.Status)

		_, err = svc.Enroll(ctx, course.ID, student.ID)
		assert.Equal(t, "ALREADY_ENROLLED", model.Code(err))
		assert.True(t, errors.Is(err, model.ErrConflict))
	})

	t.Run("存在しない講座", func(t *testing.T) {
		_, err := svc.GetCourse(ctx, 9999)
		assert.Equal(t, "COURSE_NOT_FOUND", model.Code(err))

		_, err = svc.Enroll(ctx, 9999, student.ID)
		assert.True(t, errors.Is(err, model.ErrNotFound))

		_, err = svc.PublishCourse(ctx, 9999, owner)
		assert.Equal(t, "COURSE_NOT_FOUND", model.Code(err))
	})
}
