package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_4_elearning/internal/handlers"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/service/mocks"
)

func newCertificateRouter(svc *mocks.CertificateService, identity *model.Identity) *chi.Mux {
	h := handlers.NewCertificateHandler(svc)
	r := newAuthedRouter(identity)
	r.Get("/courses/{course_id}/eligibility", h.CheckEligibility)
	r.Post("/courses/{course_id}/certificates", h.IssueCertificate)
	r.Post("/courses/{course_id}/certificate/claim", h.ClaimCertificate)
	r.Get("/courses/{course_id}/certificate", h.GetCertificate)
	r.Get("/certificates/verify/{code}", h.VerifyCertificate)
	return r
}

func TestCertificateHandler_IssueCertificate(t *testing.T) {
	issued := &model.Certificate{ID: 1, UserID: 7, CourseID: 3, Code: "CERT-ABC123-DEF456", IssuedAt: time.Now()}

	tests := []struct {
		name         string
		path         string
		body         interface{}
		setupMock    func(m *mocks.CertificateService)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "正常系: 講師が発行",
			path: "/courses/3/certificates",
			body: model.IssueCertificateRequest{UserID: 7},
			setupMock: func(m *mocks.CertificateService) {
				m.On("IssueCertificate", mock.Anything, uint(7), uint(3), uint(1), model.RoleInstructor).Return(issued, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: user_id なし",
			path:         "/courses/3/certificates",
			body:         map[string]interface{}{},
			setupMock:    func(m *mocks.CertificateService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "異常系: course_id が数値でない",
			path:         "/courses/abc/certificates",
			body:         model.IssueCertificateRequest{UserID: 7},
			setupMock:    func(m *mocks.CertificateService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_URL_PARAM",
		},
		{
			name: "異常系: 修了条件未達",
			path: "/courses/3/certificates",
			body: model.IssueCertificateRequest{UserID: 7},
			setupMock: func(m *mocks.CertificateService) {
				m.On("IssueCertificate", mock.Anything, uint(7), uint(3), uint(1), model.RoleInstructor).
					Return(nil, model.NewAppError("NOT_ELIGIBLE", "User is not eligible: NOT_ALL_LESSONS_COMPLETED: 3/5", "", model.ErrForbidden)).Once()
			},
			expectedCode: http.StatusForbidden,
			expectedErr:  "NOT_ELIGIBLE",
		},
		{
			name: "異常系: 発行済み",
			path: "/courses/3/certificates",
			body: model.IssueCertificateRequest{UserID: 7},
			setupMock: func(m *mocks.CertificateService) {
				m.On("IssueCertificate", mock.Anything, uint(7), uint(3), uint(1), model.RoleInstructor).
					Return(nil, model.NewAppError("CERTIFICATE_ALREADY_ISSUED", "Certificate already issued for this user and course", "", model.ErrConflict)).Once()
			},
			expectedCode: http.StatusConflict,
			expectedErr:  "CERTIFICATE_ALREADY_ISSUED",
		},
		{
			name: "異常系: コード衝突はリトライ可能",
			path: "/courses/3/certificates",
			body: model.IssueCertificateRequest{UserID: 7},
			setupMock: func(m *mocks.CertificateService) {
				m.On("IssueCertificate", mock.Anything, uint(7), uint(3), uint(1), model.RoleInstructor).
					Return(nil, model.NewAppError("CERTIFICATE_CODE_COLLISION", "Certificate code collision, please retry", "", model.ErrRetryable)).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedErr:  "CERTIFICATE_CODE_COLLISION",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.CertificateService)
			tc.setupMock(svc)

			rr := sendRequest(t, newCertificateRouter(svc, instructorIdentity), http.MethodPost, tc.path, tc.body)

			assert.Equal(t, tc.expectedCode, rr.Code, rr.Body.String())
			if tc.expectedErr != "" {
				assert.Equal(t, tc.expectedErr, decodeError(t, rr).Code)
			} else {
				var cert model.Certificate
				decodeBody(t, rr, &cert)
				assert.Equal(t, issued.Code, cert.Code)
				assert.Equal(t, uint(7), cert.UserID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCertificateHandler_ClaimCertificate(t *testing.T) {
	t.Run("正常系: 本人が申請", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("ClaimCertificate", mock.Anything, uint(7), uint(3)).
			Return(&model.Certificate{ID: 2, UserID: 7, CourseID: 3, Code: "CERT-AAAAAA-BBBBBB"}, nil).Once()

		rr := sendRequest(t, newCertificateRouter(svc, studentIdentity), http.MethodPost, "/courses/3/certificate/claim", nil)

		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: 申請済み", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("ClaimCertificate", mock.Anything, uint(7), uint(3)).
			Return(nil, model.NewAppError("CERTIFICATE_ALREADY_CLAIMED", "Certificate already claimed for this course", "", model.ErrConflict)).Once()

		rr := sendRequest(t, newCertificateRouter(svc, studentIdentity), http.MethodPost, "/courses/3/certificate/claim", nil)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "CERTIFICATE_ALREADY_CLAIMED", decodeError(t, rr).Code)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: 未認証", func(t *testing.T) {
		svc := new(mocks.CertificateService)

		rr := sendRequest(t, newCertificateRouter(svc, nil), http.MethodPost, "/courses/3/certificate/claim", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertNotCalled(t, "ClaimCertificate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCertificateHandler_GetCertificate(t *testing.T) {
	t.Run("未発行なら404", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("GetCertificate", mock.Anything, uint(7), uint(3)).Return(nil, nil).Once()

		rr := sendRequest(t, newCertificateRouter(svc, studentIdentity), http.MethodGet, "/courses/3/certificate", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "CERTIFICATE_NOT_FOUND", decodeError(t, rr).Code)
		svc.AssertExpectations(t)
	})

	t.Run("発行済みなら200", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("GetCertificate", mock.Anything, uint(7), uint(3)).
			Return(&model.Certificate{ID: 2, UserID: 7, CourseID: 3, Code: "CERT-AAAAAA-BBBBBB"}, nil).Once()

		rr := sendRequest(t, newCertificateRouter(svc, studentIdentity), http.MethodGet, "/courses/3/certificate", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var cert model.Certificate
		decodeBody(t, rr, &cert)
		assert.Equal(t, "CERT-AAAAAA-BBBBBB", cert.Code)
		svc.AssertExpectations(t)
	})
}

func TestCertificateHandler_CheckEligibility(t *testing.T) {
	svc := new(mocks.CertificateService)
	svc.On("CheckEligibility", mock.Anything, uint(7), uint(3)).
		Return(&model.EligibilityResult{Eligible: false, Reason: "NOT_ALL_LESSONS_COMPLETED: 3/5"}, nil).Once()

	rr := sendRequest(t, newCertificateRouter(svc, studentIdentity), http.MethodGet, "/courses/3/eligibility", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"eligible":false,"reason":"NOT_ALL_LESSONS_COMPLETED: 3/5"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestCertificateHandler_VerifyCertificate(t *testing.T) {
	issuedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("有効なコード", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("VerifyCertificate", mock.Anything, "CERT-ABC123-DEF456").Return(&model.VerificationResult{
			Valid:    true,
			User:     &model.CertificateHolder{Name: "Alice"},
			Course:   &model.CertificateCourse{Title: "Go 入門"},
			IssuedAt: &issuedAt,
		}, nil).Once()

		// 公開APIなので Identity なし
		rr := sendRequest(t, newCertificateRouter(svc, nil), http.MethodGet, "/certificates/verify/CERT-ABC123-DEF456", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"valid":true,"user":{"name":"Alice"},"course":{"title":"Go 入門"},"issued_at":"2025-01-02T03:04:05Z"}`, rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("存在しないコードも200でvalid=false", func(t *testing.T) {
		svc := new(mocks.CertificateService)
		svc.On("VerifyCertificate", mock.Anything, "CERT-NOPE00-NOPE00").Return(&model.VerificationResult{Valid: false}, nil).Once()

		rr := sendRequest(t, newCertificateRouter(svc, nil), http.MethodGet, "/certificates/verify/CERT-NOPE00-NOPE00", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"valid":false}`, rr.Body.String())
		svc.AssertExpectations(t)
	})
}
