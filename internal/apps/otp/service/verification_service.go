package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"spam-shield/internal/apps/otp/models"
	userrepo "spam-shield/internal/apps/user/repository"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/logger"
	"spam-shield/internal/common/metrics"
	"spam-shield/pkg/phone"
	"spam-shield/pkg/secure"
)

const (
	DefaultCodeLength      = 6
	DefaultExpiry          = 120 * time.Second
	DefaultResendCooldown  = 60 * time.Second
	DefaultDeliveryTimeout = 12 * time.Second
)

// Options tunes a VerificationService. Zero values take the defaults above.
type Options struct {
	CodeLength      int
	Expiry          time.Duration
	ResendCooldown  time.Duration
	DeliveryTimeout time.Duration

	// Now is the time source (time.Now by default)
	Now func() time.Time
	// GenerateCode draws a code of n digits (secure.RandomDigits by default)
	GenerateCode func(n int) (string, error)
}

func (o Options) withDefaults() Options {
	if o.CodeLength <= 0 {
		o.CodeLength = DefaultCodeLength
	}
	if o.Expiry <= 0 {
		o.Expiry = DefaultExpiry
	}
	if o.ResendCooldown <= 0 {
		o.ResendCooldown = DefaultResendCooldown
	}
	if o.DeliveryTimeout <= 0 {
		o.DeliveryTimeout = DefaultDeliveryTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.GenerateCode == nil {
		o.GenerateCode = secure.RandomDigits
	}
	return o
}

// VerificationService drives the OTP state machine of a single session.
// Callers load the session, pass it in, and save it afterwards; a session
// must not be used by two calls at once.
type VerificationService interface {
	RequestOTP(ctx context.Context, session *models.VerificationSession, name, rawPhone string) (*models.OTPResponse, error)
	ResendOTP(ctx context.Context, session *models.VerificationSession) (*models.OTPResponse, error)
	VerifyOTP(ctx context.Context, session *models.VerificationSession, candidate string) (*models.VerifyOTPResponse, error)
	Status(session *models.VerificationSession) *models.SessionStatusResponse
	CheckSender(ctx context.Context) *models.SenderStatusResponse
}

// verificationService implements VerificationService
type verificationService struct {
	sender     SMSSender
	directory  userrepo.Directory
	normalizer phone.Normalizer
	opts       Options
}

// NewVerificationService creates a new instance of VerificationService
func NewVerificationService(sender SMSSender, directory userrepo.Directory, normalizer phone.Normalizer, opts Options) VerificationService {
	return &verificationService{
		sender:     sender,
		directory:  directory,
		normalizer: normalizer,
		opts:       opts.withDefaults(),
	}
}

// RequestOTP normalizes the number, sends a fresh code and arms the session.
// On any failure the session is left as it was. A verified session is final.
func (s *verificationService) RequestOTP(ctx context.Context, session *models.VerificationSession, name, rawPhone string) (*models.OTPResponse, error) {
	if session.IsVerified() {
		metrics.RecordOTPIssue("request", "already_verified")
		return nil, apperr.ErrAlreadyVerified
	}

	name = strings.TrimSpace(name)
	rawPhone = strings.TrimSpace(rawPhone)
	if name == "" || rawPhone == "" {
		metrics.RecordOTPIssue("request", "invalid")
		return nil, apperr.Newf(apperr.CodeInvalidInput, "Name and phone number are required.")
	}

	info, err := s.normalizer.Parse(rawPhone)
	if err != nil {
		metrics.RecordOTPIssue("request", "invalid_phone")
		return nil, apperr.Wrap(apperr.CodeInvalidPhoneNumber, err)
	}

	return s.issue(ctx, session, "request", info.E164, name)
}

// ResendOTP sends a new code to the remembered number once the cooldown has passed
func (s *verificationService) ResendOTP(ctx context.Context, session *models.VerificationSession) (*models.OTPResponse, error) {
	if session.IsVerified() {
		metrics.RecordOTPIssue("resend", "already_verified")
		return nil, apperr.ErrAlreadyVerified
	}
	if session.Phone == "" || session.DisplayName == "" {
		metrics.RecordOTPIssue("resend", "no_phone")
		return nil, apperr.ErrNoPhoneOnFile
	}

	now := s.opts.Now()
	if session.ResendUnlockAt != nil && now.Before(*session.ResendUnlockAt) {
		metrics.RecordOTPIssue("resend", "throttled")
		wait := ceilSeconds(session.ResendUnlockAt.Sub(now))
		return nil, apperr.Newf(apperr.CodeResendNotYetAllowed, "Please wait %d seconds before resending.", wait)
	}

	return s.issue(ctx, session, "resend", session.Phone, session.DisplayName)
}

func (s *verificationService) issue(ctx context.Context, session *models.VerificationSession, kind, e164, name string) (*models.OTPResponse, error) {
	code, err := s.opts.GenerateCode(s.opts.CodeLength)
	if err != nil {
		metrics.RecordOTPIssue(kind, "error")
		return nil, apperr.Wrap(apperr.CodeDeliveryFailed, err)
	}

	if err := s.deliver(ctx, e164, code, name); err != nil {
		metrics.RecordOTPIssue(kind, string(apperr.CodeOf(err)))
		logger.Logger.Warn().Err(err).
			Str("session_id", session.ID).
			Str("phone", secure.MaskPhone(e164)).
			Str("provider", s.sender.Name()).
			Msg("otp delivery failed")
		return nil, err
	}

	now := s.opts.Now()
	session.Arm(e164, name, code, now, s.opts.ResendCooldown)

	metrics.RecordOTPIssue(kind, "ok")
	logger.Logger.Info().
		Str("session_id", session.ID).
		Str("phone", secure.MaskPhone(e164)).
		Str("kind", kind).
		Msg("otp issued")

	return &models.OTPResponse{
		Phone:             e164,
		ExpiresAt:         now.Add(s.opts.Expiry),
		ResendAvailableAt: *session.ResendUnlockAt,
	}, nil
}

// deliver runs one dispatch bounded by DeliveryTimeout
func (s *verificationService) deliver(ctx context.Context, e164, code, name string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.DeliveryTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- s.sender.Send(ctx, e164, code, name)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
		err = apperr.Wrap(apperr.CodeDeliveryTimeout, err)
	default:
		result = "error"
		err = apperr.Wrap(apperr.CodeDeliveryFailed, err)
	}
	metrics.RecordSMSSend(s.sender.Name(), result, time.Since(start))
	return err
}

// VerifyOTP checks candidate against the pending code. Wrong guesses leave the
// code in place; an expired code is discarded.
func (s *verificationService) VerifyOTP(ctx context.Context, session *models.VerificationSession, candidate string) (*models.VerifyOTPResponse, error) {
	if !session.HasPendingCode() {
		metrics.RecordOTPVerification("no_pending")
		return nil, apperr.ErrNoPendingCode
	}

	if s.opts.Now().Sub(*session.IssuedAt) > s.opts.Expiry {
		session.ClearPending()
		metrics.RecordOTPVerification("expired")
		return nil, apperr.ErrExpired
	}

	if !secure.EqualString(normalizeCandidate(candidate, s.opts.CodeLength), session.PendingCode) {
		metrics.RecordOTPVerification("incorrect")
		return nil, apperr.ErrIncorrectCode
	}

	// verified_phone is written once
	if session.VerifiedPhone == "" {
		session.VerifiedPhone = session.Phone
	}
	session.ClearPending()
	metrics.RecordOTPVerification("verified")

	resp := &models.VerifyOTPResponse{
		VerifiedPhone: session.VerifiedPhone,
		Name:          session.DisplayName,
		Persisted:     true,
	}
	if err := s.directory.Upsert(ctx, session.VerifiedPhone, session.DisplayName); err != nil {
		logger.Logger.Error().Err(err).
			Str("session_id", session.ID).
			Str("phone", secure.MaskPhone(session.VerifiedPhone)).
			Msg("verified user could not be saved")
		resp.Persisted = false
		resp.DirectoryError = "Verified, but the user record could not be saved."
	}

	logger.Logger.Info().
		Str("session_id", session.ID).
		Str("phone", secure.MaskPhone(session.VerifiedPhone)).
		Msg("phone number verified")
	return resp, nil
}

// normalizeCandidate trims the input and restores leading zeros lost by numeric inputs
func normalizeCandidate(candidate string, length int) string {
	c := strings.TrimSpace(candidate)
	if c == "" || len(c) >= length {
		return c
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return c
		}
	}
	return strings.Repeat("0", length-len(c)) + c
}

// Status describes the session without revealing the code
func (s *verificationService) Status(session *models.VerificationSession) *models.SessionStatusResponse {
	now := s.opts.Now()
	resp := &models.SessionStatusResponse{
		State:         session.State(),
		Phone:         secure.MaskPhone(session.Phone),
		VerifiedPhone: session.VerifiedPhone,
	}

	if session.HasPendingCode() {
		left := session.IssuedAt.Add(s.opts.Expiry).Sub(now)
		if left < 0 {
			resp.State = models.StateExpired
			left = 0
		}
		secs := ceilSeconds(left)
		resp.ExpiresInSeconds = &secs
	}
	if session.ResendUnlockAt != nil {
		secs := ceilSeconds(session.ResendUnlockAt.Sub(now))
		resp.ResendAvailableInSeconds = &secs
	}
	return resp
}

// CheckSender asks the configured sender to validate its setup
func (s *verificationService) CheckSender(ctx context.Context) *models.SenderStatusResponse {
	resp := &models.SenderStatusResponse{Provider: s.sender.Name()}

	checker, ok := s.sender.(SetupChecker)
	if !ok {
		resp.OK = true
		resp.Message = "Provider does not support setup checks."
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.DeliveryTimeout)
	defer cancel()

	msg, err := checker.CheckSetup(ctx)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("provider", resp.Provider).Msg("sms sender setup check failed")
		resp.Message = err.Error()
		return resp
	}
	resp.OK = true
	resp.Message = msg
	return resp
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
