package handler

import (
	"net/http"
	"strconv"
	"time"

	"spam-shield/internal/apps/otp/models"
	"spam-shield/internal/apps/otp/repository"
	"spam-shield/internal/apps/otp/service"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/logger"
	"spam-shield/internal/common/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie carries the verification session id
const SessionCookie = "spam_shield_session"

// OTPHandler handles HTTP endpoints for phone verification
type OTPHandler struct {
	service      service.VerificationService
	sessions     repository.SessionStore
	sessionTTL   time.Duration
	secureCookie bool
}

// NewOTPHandler creates a new instance of OTPHandler. secureCookie marks the
// session cookie Secure and should be set whenever the API is served over TLS.
func NewOTPHandler(service service.VerificationService, sessions repository.SessionStore, sessionTTL time.Duration, secureCookie bool) *OTPHandler {
	return &OTPHandler{
		service:      service,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

// RequestOTP handles POST /api/v1/otp/request
func (h *OTPHandler) RequestOTP(c *gin.Context) {
	var req models.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	resp, err := h.service.RequestOTP(c.Request.Context(), session, req.Name, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp, "message": "OTP sent."})
}

// ResendOTP handles POST /api/v1/otp/resend
func (h *OTPHandler) ResendOTP(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	resp, err := h.service.ResendOTP(c.Request.Context(), session)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeResendNotYetAllowed {
			if st := h.service.Status(session); st.ResendAvailableInSeconds != nil {
				c.Header("Retry-After", strconv.Itoa(*st.ResendAvailableInSeconds))
			}
		}
		response.Error(c, err)
		return
	}
	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp, "message": "OTP resent."})
}

// VerifyOTP handles POST /api/v1/otp/verify
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	resp, err := h.service.VerifyOTP(c.Request.Context(), session, string(req.Code))
	// expiry clears the pending code, so the session is saved on errors too
	if !h.saveSession(c, session) {
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "message": "Phone number verified."})
}

// GetSession handles GET /api/v1/otp/session
func (h *OTPHandler) GetSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.service.Status(session)})
}

// GetSenderStatus handles GET /api/v1/otp/sender/status
func (h *OTPHandler) GetSenderStatus(c *gin.Context) {
	status := h.service.CheckSender(c.Request.Context())
	code := http.StatusOK
	if !status.OK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"data": status})
}

// loadSession returns the caller's session, creating a fresh one when the
// cookie is missing or the session expired. It writes the error response itself.
func (h *OTPHandler) loadSession(c *gin.Context) (*models.VerificationSession, bool) {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		session, found, err := h.sessions.Load(c.Request.Context(), id)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("failed to load verification session")
			response.Error(c, apperr.Wrap(apperr.CodeStorage, err))
			return nil, false
		}
		if found {
			return session, true
		}
	}

	return models.NewVerificationSession(uuid.NewString()), true
}

func (h *OTPHandler) saveSession(c *gin.Context, session *models.VerificationSession) bool {
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		logger.Logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to save verification session")
		response.Error(c, apperr.Wrap(apperr.CodeStorage, err))
		return false
	}
	h.setCookie(c, session.ID)
	return true
}

func (h *OTPHandler) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", h.secureCookie, true)
}
