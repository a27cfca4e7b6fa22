package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/repository"

	"gorm.io/gorm"
)

//go:generate mockery --name CertificateService --output ./mocks --outpkg mocks --case=underscore
type CertificateService interface {
	CheckEligibility(ctx context.Context, userID, courseID uint) (*model.EligibilityResult, error)
	IssueCertificate(ctx context.Context, userID, courseID, issuerID uint, issuerRole string) (*model.Certificate, error)
	ClaimCertificate(ctx context.Context, userID, courseID uint) (*model.Certificate, error)
	VerifyCertificate(ctx context.Context, code string) (*model.VerificationResult, error)
	GetCertificate(ctx context.Context, userID, courseID uint) (*model.Certificate, error)
}

// トランザクション内の INSERT が一意制約に当たったことを外へ伝える
var errCertificateUniqueViolation = errors.New("certificate unique constraint violated")

// 発行 (講師/管理者) と自己申請で違うのはエラー文言だけ
type issuanceMessages struct {
	notEligiblePrefix string
	duplicateCode     string
	duplicateMessage  string
}

var (
	issueMessages = issuanceMessages{
		notEligiblePrefix: "User is not eligible: ",
		duplicateCode:     "CERTIFICATE_ALREADY_ISSUED",
		duplicateMessage:  "Certificate already issued for this user and course",
	}
	claimMessages = issuanceMessages{
		notEligiblePrefix: "Not eligible for certificate: ",
		duplicateCode:     "CERTIFICATE_ALREADY_CLAIMED",
		duplicateMessage:  "Certificate already claimed for this course",
	}
)

type certificateService struct {
	db            *gorm.DB
	courseRepo    repository.CourseRepository
	enrollRepo    repository.EnrollmentRepository
	certRepo      repository.CertificateRepository
	userRepo      repository.UserRepository
	progress      ProgressService
	codes         *CodeGenerator
	mailer        Mailer
	maxAttempts   int
	verifyURLBase string
	now           func() time.Time
}

func NewCertificateService(
	db *gorm.DB,
	courseRepo repository.CourseRepository,
	enrollRepo repository.EnrollmentRepository,
	certRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	progress ProgressService,
	codes *CodeGenerator,
	mailer Mailer,
	cfg *config.CertificateConfig,
) CertificateService {
	maxAttempts := cfg.CodeMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultCodeMaxAttempts
	}
	return &certificateService{
		db:            db,
		courseRepo:    courseRepo,
		enrollRepo:    enrollRepo,
		certRepo:      certRepo,
		userRepo:      userRepo,
		progress:      progress,
		codes:         codes,
		mailer:        mailer,
		maxAttempts:   maxAttempts,
		verifyURLBase: strings.TrimRight(cfg.VerifyURLBase, "/"),
		now:           time.Now,
	}
}

// CheckEligibility は読み取りのみ。判定できない (行がない) 場合も error ではなく理由付きで返す
func (s *certificateService) CheckEligibility(ctx context.Context, userID, courseID uint) (*model.EligibilityResult, error) {
	logger := middleware.GetLogger(ctx)

	enrollment, err := s.enrollRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.EligibilityResult{Eligible: false, Reason: model.ReasonEnrollmentNotFound}, nil
		}
		logger.Error("Failed to load enrollment for eligibility", "error", err, "user_id", userID, "course_id", courseID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to check eligibility.", "", err)
	}
	if !enrollment.CountsTowardCompletion() {
		return &model.EligibilityResult{Eligible: false, Reason: model.ReasonEnrollmentNotActive}, nil
	}

	progress, err := s.progress.GetUserCourseProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if progress.TotalLessons == 0 {
		return &model.EligibilityResult{Eligible: false, Reason: model.ReasonNoLessonsInCourse}, nil
	}
	if progress.LessonsCompleted < progress.TotalLessons {
		return &model.EligibilityResult{
			Eligible: false,
			Reason:   fmt.Sprintf("%s: %d/%d", model.ReasonNotAllLessonsCompleted, progress.LessonsCompleted, progress.TotalLessons),
		}, nil
	}
	return &model.EligibilityResult{Eligible: true}, nil
}

func (s *certificateService) IssueCertificate(ctx context.Context, userID, courseID, issuerID uint, issuerRole string) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID, "issuer_id", issuerID)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "Course not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to load course for issuance", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load course.", "", err)
	}

	if !CanManageCourse(issuerRole, issuerID, course.InstructorID) {
		logger.Warn("Certificate issuance rejected: not course owner", "role", issuerRole)
		return nil, model.NewAppError("FORBIDDEN", "You can only issue certificates for your own courses", "", model.ErrForbidden)
	}

	cert, err := s.issue(ctx, userID, courseID, issueMessages)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, cert, course.Title)
	return cert, nil
}

func (s *certificateService) ClaimCertificate(ctx context.Context, userID, courseID uint) (*model.Certificate, error) {
	cert, err := s.issue(ctx, userID, courseID, claimMessages)
	if err != nil {
		return nil, err
	}

	title := ""
	if course, err := s.courseRepo.FindByID(ctx, s.db, courseID); err == nil {
		title = course.Title
	}
	s.notify(ctx, cert, title)
	return cert, nil
}

// issue は発行と自己申請の共通処理。
// 重複チェック・コード採番・INSERT は1トランザクションで行い、最終的な一意性は DB 制約に任せる
func (s *certificateService) issue(ctx context.Context, userID, courseID uint, msgs issuanceMessages) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	eligibility, err := s.CheckEligibility(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		logger.Info("Certificate rejected: not eligible", "reason", eligibility.Reason)
		return nil, model.NewAppError("NOT_ELIGIBLE", msgs.notEligiblePrefix+eligibility.Reason, "", model.ErrForbidden)
	}

	duplicateErr := model.NewAppError(msgs.duplicateCode, msgs.duplicateMessage, "", model.ErrConflict)
	var created *model.Certificate

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.certRepo.FindByUserAndCourse(ctx, tx, userID, courseID)
		if err == nil {
			return duplicateErr
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to check existing certificate.", "", err)
		}

		code, err := s.uniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		cert := &model.Certificate{
			UserID:   userID,
			CourseID: courseID,
			Code:     code,
			IssuedAt: s.now().UTC(),
		}
		if err := s.certRepo.Create(ctx, tx, cert); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return errCertificateUniqueViolation
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save certificate.", "", err)
		}
		created = cert
		return nil
	})

	if errors.Is(err, errCertificateUniqueViolation) {
		// どちらの制約に当たったかは、ロールバック後に (user, course) を引き直して判定する
		if _, findErr := s.certRepo.FindByUserAndCourse(ctx, s.db, userID, courseID); findErr == nil {
			logger.Warn("Concurrent certificate issuance detected")
			return nil, duplicateErr
		}
		logger.Warn("Certificate code collided on insert")
		return nil, model.NewAppError("CERTIFICATE_CODE_COLLISION", "Certificate code collision, please retry", "", model.ErrRetryable)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Certificate issued", "certificate_id", created.ID, "code", created.Code)
	return created, nil
}

// uniqueCode は未使用のコードが見つかるまで最大 maxAttempts 回だけ採番し直す
func (s *certificateService) uniqueCode(ctx context.Context, tx *gorm.DB) (string, error) {
	logger := middleware.GetLogger(ctx)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			logger.Error("Failed to generate certificate code", "error", err)
			return "", model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to generate certificate code.", "", err)
		}
		exists, err := s.certRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return "", model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to check certificate code.", "", err)
		}
		if !exists {
			return code, nil
		}
		logger.Warn("Certificate code collision, regenerating", "attempt", attempt)
	}

	logger.Error("Certificate code generation exhausted", "max_attempts", s.maxAttempts)
	return "", model.NewAppError("CODE_GENERATION_FAILED", "Failed to generate unique certificate code", "", model.ErrInternalServer)
}

// notify は発行通知メールを送る。失敗しても発行自体は成功扱いでログだけ残す
func (s *certificateService) notify(ctx context.Context, cert *model.Certificate, courseTitle string) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, cert.UserID)
	if err != nil {
		logger.Warn("Skipping certificate notification: user lookup failed", "error", err, "user_id", cert.UserID)
		return
	}

	subject := "Your certificate has been issued"
	if courseTitle != "" {
		subject = fmt.Sprintf("Your certificate for %s", courseTitle)
	}
	body := fmt.Sprintf("Hi %s,\n\nCongratulations on completing the course.\nCertificate code: %s\n", user.Name, cert.Code)
	if s.verifyURLBase != "" {
		body += fmt.Sprintf("Verify it at: %s/%s\n", s.verifyURLBase, cert.Code)
	}

	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		logger.Warn("Failed to send certificate notification", "error", err, "certificate_id", cert.ID)
	}
}

// VerifyCertificate は公開API用。名前・講座名・発行日時以外は返さない
func (s *certificateService) VerifyCertificate(ctx context.Context, code string) (*model.VerificationResult, error) {
	logger := middleware.GetLogger(ctx)

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return &model.VerificationResult{Valid: false}, nil
	}

	row, err := s.certRepo.FindVerificationByCode(ctx, s.db, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.VerificationResult{Valid: false}, nil
		}
		logger.Error("Failed to verify certificate", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to verify certificate.", "", err)
	}

	issuedAt := row.IssuedAt
	return &model.VerificationResult{
		Valid:    true,
		User:     &model.CertificateHolder{Name: row.UserName},
		Course:   &model.CertificateCourse{Title: row.CourseTitle},
		IssuedAt: &issuedAt,
	}, nil
}

// GetCertificate は未発行なら nil, nil を返す
func (s *certificateService) GetCertificate(ctx context.Context, userID, courseID uint) (*model.Certificate, error) {
	cert, err := s.certRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		middleware.GetLogger(ctx).Error("Failed to get certificate", "error", err, "user_id", userID, "course_id", courseID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load certificate.", "", err)
	}
	return cert, nil
}
