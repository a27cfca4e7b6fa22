package handlers

import (
	"net/http"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/service"
	"go_4_elearning/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CertificateHandler struct {
	service service.CertificateService
}

func NewCertificateHandler(s service.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: s}
}

// CheckEligibility はログイン中ユーザーの修了判定を返す
func (h *CertificateHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "CheckEligibility")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), identity.ID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// IssueCertificate は講師/管理者が受講者に修了証を発行する
func (h *CertificateHandler) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "IssueCertificate")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.IssueCertificateRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid issue certificate request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.IssueCertificate(r.Context(), req.UserID, courseID, identity.ID, identity.Role)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, cert, logger)
}

// ClaimCertificate は本人が自分の修了証を申請する
func (h *CertificateHandler) ClaimCertificate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "ClaimCertificate")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.ClaimCertificate(r.Context(), identity.ID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, cert, logger)
}

// GetCertificate は未発行なら 404 を返す
func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetCertificate")

	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.URLParamUint(r, "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.GetCertificate(r.Context(), identity.ID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cert == nil {
		webutil.HandleError(w, logger, model.NewAppError("CERTIFICATE_NOT_FOUND", "Certificate not found", "", model.ErrNotFound))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, cert, logger)
}

// VerifyCertificate は公開の検証API。見つからなくても 200 で valid=false を返す
func (h *CertificateHandler) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "VerifyCertificate")

	result, err := h.service.VerifyCertificate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
