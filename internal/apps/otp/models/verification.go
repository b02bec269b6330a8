package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// VerificationState is the lifecycle position of a VerificationSession
type VerificationState string

const (
	StateIdle     VerificationState = "idle"
	StatePending  VerificationState = "pending"
	StateExpired  VerificationState = "expired"
	StateVerified VerificationState = "verified"
)

// VerificationSession holds the OTP state of one client session.
// Empty strings and nil timestamps mean "absent".
type VerificationSession struct {
	ID             string     `json:"id"`
	Phone          string     `json:"phone_e164,omitempty"`
	DisplayName    string     `json:"display_name,omitempty"`
	PendingCode    string     `json:"pending_code,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ResendUnlockAt *time.Time `json:"resend_unlock_at,omitempty"`
	VerifiedPhone  string     `json:"verified_phone,omitempty"`
}

// NewVerificationSession creates an Idle session
func NewVerificationSession(id string) *VerificationSession {
	return &VerificationSession{ID: id}
}

// HasPendingCode reports whether a code is armed
func (s *VerificationSession) HasPendingCode() bool {
	return s.PendingCode != "" && s.IssuedAt != nil
}

// IsVerified reports whether the session ever completed verification
func (s *VerificationSession) IsVerified() bool {
	return s.VerifiedPhone != ""
}

// State derives the state from the stored fields. Expiry is not considered here;
// it is detected when a code is checked.
func (s *VerificationSession) State() VerificationState {
	switch {
	case s.HasPendingCode():
		return StatePending
	case s.IsVerified():
		return StateVerified
	default:
		return StateIdle
	}
}

// Arm stores a freshly delivered code, replacing any previous one
func (s *VerificationSession) Arm(phone, name, code string, now time.Time, cooldown time.Duration) {
	issued := now
	unlock := now.Add(cooldown)
	s.Phone = phone
	s.DisplayName = name
	s.PendingCode = code
	s.IssuedAt = &issued
	s.ResendUnlockAt = &unlock
}

// ClearPending drops the code and its timers; phone and name are kept for resends
func (s *VerificationSession) ClearPending() {
	s.PendingCode = ""
	s.IssuedAt = nil
	s.ResendUnlockAt = nil
}

// OTPCode is a code submitted by a client. It accepts a JSON string or a JSON
// number, since numeric inputs drop leading zeros.
type OTPCode string

// UnmarshalJSON implements json.Unmarshaler
func (c *OTPCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = OTPCode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a string or a number: %w", err)
	}
	*c = OTPCode(n.String())
	return nil
}

// RequestOTPRequest payload to send an OTP to a phone number
type RequestOTPRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest payload to verify the pending OTP
type VerifyOTPRequest struct {
	Code OTPCode `json:"code" binding:"required"`
}

// OTPResponse is returned after a code was sent (without exposing the value)
type OTPResponse struct {
	Phone             string    `json:"phone"`
	ExpiresAt         time.Time `json:"expires_at"`
	ResendAvailableAt time.Time `json:"resend_available_at"`
}

// VerifyOTPResponse is returned after a successful verification.
// Persisted is false when the user directory could not record the user;
// the verification itself still stands.
type VerifyOTPResponse struct {
	VerifiedPhone  string `json:"verified_phone"`
	Name           string `json:"name"`
	Persisted      bool   `json:"persisted"`
	DirectoryError string `json:"directory_error,omitempty"`
}

// SessionStatusResponse describes a session without exposing the code
type SessionStatusResponse struct {
	State                    VerificationState `json:"state"`
	Phone                    string            `json:"phone,omitempty"`
	VerifiedPhone            string            `json:"verified_phone,omitempty"`
	ExpiresInSeconds         *int              `json:"expires_in_seconds,omitempty"`
	ResendAvailableInSeconds *int              `json:"resend_available_in_seconds,omitempty"`
}

// SenderStatusResponse reports whether the SMS vendor is reachable and configured
type SenderStatusResponse struct {
	Provider string `json:"provider"`
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
}
