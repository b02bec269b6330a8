package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a failure kind. It is stable and safe to expose to clients.
type Code string

const (
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeInvalidPhoneNumber  Code = "INVALID_PHONE_NUMBER"
	CodeDeliveryFailed      Code = "DELIVERY_FAILED"
	CodeDeliveryTimeout     Code = "DELIVERY_TIMEOUT"
	CodeResendNotYetAllowed Code = "RESEND_NOT_YET_ALLOWED"
	CodeNoPhoneOnFile       Code = "NO_PHONE_ON_FILE"
	CodeNoPendingCode       Code = "NO_PENDING_CODE"
	CodeExpired             Code = "EXPIRED"
	CodeIncorrectCode       Code = "INCORRECT_CODE"
	CodeStorage             Code = "STORAGE_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeAlreadyVerified     Code = "ALREADY_VERIFIED"
)

var messages = map[Code]string{
	CodeInvalidInput:        "Invalid request.",
	CodeInvalidPhoneNumber:  "Invalid phone number.",
	CodeDeliveryFailed:      "Failed to send the OTP by SMS. Please try again.",
	CodeDeliveryTimeout:     "The SMS provider did not respond in time. Please try again.",
	CodeResendNotYetAllowed: "Please wait before requesting another OTP.",
	CodeNoPhoneOnFile:       "Send an OTP first.",
	CodeNoPendingCode:       "There is no OTP waiting to be verified. Request one first.",
	CodeExpired:             "OTP expired. Please request a new code.",
	CodeIncorrectCode:       "Incorrect OTP.",
	CodeStorage:             "Storage is temporarily unavailable. Please try again later.",
	CodeNotFound:            "The requested record does not exist.",
	CodeAlreadyVerified:     "This session has already verified a phone number.",
}

var statuses = map[Code]int{
	CodeInvalidInput:        http.StatusBadRequest,
	CodeInvalidPhoneNumber:  http.StatusUnprocessableEntity,
	CodeDeliveryFailed:      http.StatusBadGateway,
	CodeDeliveryTimeout:     http.StatusGatewayTimeout,
	CodeResendNotYetAllowed: http.StatusTooManyRequests,
	CodeNoPhoneOnFile:       http.StatusConflict,
	CodeNoPendingCode:       http.StatusConflict,
	CodeExpired:             http.StatusGone,
	CodeIncorrectCode:       http.StatusUnauthorized,
	CodeStorage:             http.StatusInternalServerError,
	CodeNotFound:            http.StatusNotFound,
	CodeAlreadyVerified:     http.StatusConflict,
}

// Error is the application error carried through services to handlers
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, apperr.ErrExpired) works
// regardless of message or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates an error with the default message for code
func New(code Code) *Error {
	return &Error{Code: code, Message: messages[code]}
}

// Newf creates an error with a custom message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an error with the default message for code
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: messages[code], Err: err}
}

// Sentinels for errors.Is checks
var (
	ErrInvalidInput        = New(CodeInvalidInput)
	ErrInvalidPhoneNumber  = New(CodeInvalidPhoneNumber)
	ErrDeliveryFailed      = New(CodeDeliveryFailed)
	ErrDeliveryTimeout     = New(CodeDeliveryTimeout)
	ErrResendNotYetAllowed = New(CodeResendNotYetAllowed)
	ErrNoPhoneOnFile       = New(CodeNoPhoneOnFile)
	ErrNoPendingCode       = New(CodeNoPendingCode)
	ErrExpired             = New(CodeExpired)
	ErrIncorrectCode       = New(CodeIncorrectCode)
	ErrStorage             = New(CodeStorage)
	ErrNotFound            = New(CodeNotFound)
	ErrAlreadyVerified     = New(CodeAlreadyVerified)
)

// CodeOf extracts the code of err, or "" when err is not an *Error
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus maps err to a response status; unknown errors are 500
func HTTPStatus(err error) int {
	if status, ok := statuses[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Message returns the client facing message for err
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}
