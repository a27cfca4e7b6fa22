package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"
)

var testDBSeq int64

// newTestDB はテストごとに独立したインメモリ sqlite を開き、全テーブルを作る。
// 接続は1本に絞るので、トランザクション内では tx 以外で DB を触らないこと
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()
	u := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedCourse は講座と lessonCount 件のレッスンを作る
func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, published bool, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	c := &model.Course{InstructorID: instructorID, Title: "Go 入門", Published: published}
	require.NoError(t, db.Create(c).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 1; i <= lessonCount; i++ {
		l := model.Lesson{CourseID: c.ID, Title: fmt.Sprintf("第%d回", i), Position: i}
		require.NoError(t, db.Create(&l).Error)
		lessons = append(lessons, l)
	}
	return c, lessons
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, status model.EnrollmentStatus) *model.Enrollment {
	t.Helper()
	e := &model.Enrollment{UserID: userID, CourseID: courseID, Status: status}
	require.NoError(t, db.Create(e).Error)
	return e
}

func seedCompleted(t *testing.T, db *gorm.DB, userID uint, lessons ...model.Lesson) {
	t.Helper()
	now := time.Now()
	for _, l := range lessons {
		require.NoError(t, db.Create(&model.LessonProgress{
			UserID:      userID,
			LessonID:    l.ID,
			Completed:   true,
			CompletedAt: &now,
		}).Error)
	}
}
