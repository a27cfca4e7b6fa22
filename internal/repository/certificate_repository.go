//go:generate mockery --name CertificateRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository interface {
	Create(ctx context.Context, tx *gorm.DB, cert *model.Certificate) error
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.Certificate, error)
	CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error)
	FindVerificationByCode(ctx context.Context, db *gorm.DB, code string) (*model.CertificateVerificationRow, error)
}

type gormCertificateRepository struct{}

func NewGormCertificateRepository() CertificateRepository {
	return &gormCertificateRepository{}
}

// Create は一意制約 (user_id, course_id) / code に違反したとき model.ErrConflict を返す。
// どちらの制約かは呼び出し側で判定する
func (r *gormCertificateRepository) Create(ctx context.Context, tx *gorm.DB, cert *model.Certificate) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(cert)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Unique constraint violation on create certificate",
				"error", result.Error,
				"user_id", cert.UserID,
				"course_id", cert.CourseID,
			)
			return fmt.Errorf("gormCertificateRepository.Create: %w", model.ErrConflict)
		}
		logger.Error("Error creating certificate in DB",
			"error", result.Error,
			"user_id", cert.UserID,
			"course_id", cert.CourseID,
		)
		return fmt.Errorf("gormCertificateRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCertificateRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var cert model.Certificate
	result := db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding certificate in DB",
			"error", result.Error,
			"user_id", userID,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByUserAndCourse: %w", result.Error)
	}
	return &cert, nil
}

func (r *gormCertificateRepository) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Certificate{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking certificate code existence", "error", result.Error)
		return false, fmt.Errorf("gormCertificateRepository.CodeExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCertificateRepository) FindVerificationByCode(ctx context.Context, db *gorm.DB, code string) (*model.CertificateVerificationRow, error) {
	logger := middleware.GetLogger(ctx)
	var rows []model.CertificateVerificationRow
	result := db.WithContext(ctx).
		Table("certificates").
		Select("users.name AS user_name, courses.title AS course_title, certificates.issued_at AS issued_at").
		Joins("JOIN users ON users.id = certificates.user_id").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.code = ?", code).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error finding certificate by code", "error", result.Error)
		return nil, fmt.Errorf("gormCertificateRepository.FindVerificationByCode: %w", result.Error)
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return &rows[0], nil
}
