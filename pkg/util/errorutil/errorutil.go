package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. The kind is stable across the transport boundary so
// callers can map it to a status code without parsing messages.
const (
	KindMissingCredentials = "MISSING_CREDENTIALS"
	KindInvalidCredentials = "INVALID_CREDENTIALS"
	KindInactiveUser       = "INACTIVE_USER"
	KindNotAnAdmin         = "NOT_AN_ADMIN"

	KindMissingAccessToken  = "MISSING_ACCESS_TOKEN"
	KindInvalidAccessToken  = "INVALID_ACCESS_TOKEN"
	KindMissingRefreshToken = "MISSING_REFRESH_TOKEN"
	KindInvalidRefreshToken = "INVALID_REFRESH_TOKEN"

	KindAlreadyClockedIn  = "ALREADY_CLOCKED_IN"
	KindNotClockedIn      = "NOT_CLOCKED_IN"
	KindAlreadyClockedOut = "ALREADY_CLOCKED_OUT"
	KindAttendanceFailed  = "ATTENDANCE_FAILED"

	KindLeaveNotFound        = "LEAVE_NOT_FOUND"
	KindLeaveAlreadyDecided  = "LEAVE_ALREADY_PROCESSED"
	KindReportFailed         = "REPORT_FAILED"
	KindValidationFailed     = "VALIDATION_FAILED"
	KindUsernameAlreadyTaken = "USERNAME_ALREADY_EXISTS"

	KindNotFound     = "NOT_FOUND"
	KindConflict     = "CONFLICT"
	KindUnauthorized = "UNAUTHORIZED"
	KindForbidden    = "FORBIDDEN"
	KindInternal     = "INTERNAL_ERROR"
)

// DomainError standardizes application errors. Kind identifies the
// failure to machine callers; Message is what the end caller sees.
type DomainError struct {
	Kind       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New constructs a DomainError.
func New(kind, message string, status int) *DomainError {
	return &DomainError{Kind: kind, Message: message, HTTPStatus: status}
}

// Authentication errors. InvalidCredentials carries one fixed message
// for every underlying cause (unknown username, wrong password) so the
// response cannot be used to enumerate usernames. NotAnAdmin keeps its
// kind but presents the same opaque message.

func NewMissingCredentials() error {
	return New(KindMissingCredentials, "Username and password are required", http.StatusBadRequest)
}

func NewInvalidCredentials() error {
	return New(KindInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
}

func NewInactiveUser() error {
	return New(KindInactiveUser, "User account is inactive", http.StatusForbidden)
}

func NewNotAnAdmin() error {
	return New(KindNotAnAdmin, "Invalid credentials", http.StatusUnauthorized)
}

// Token errors. Expired, revoked and nonexistent tokens all surface
// the same invalid-token error.

func NewMissingAccessToken() error {
	return New(KindMissingAccessToken, "Missing access token", http.StatusUnauthorized)
}

func NewInvalidAccessToken() error {
	return New(KindInvalidAccessToken, "Invalid access token", http.StatusUnauthorized)
}

func NewMissingRefreshToken() error {
	return New(KindMissingRefreshToken, "Missing refresh token", http.StatusUnauthorized)
}

func NewInvalidRefreshToken() error {
	return New(KindInvalidRefreshToken, "Invalid refresh token", http.StatusUnauthorized)
}

// Attendance errors.

func NewAlreadyClockedIn() error {
	return New(KindAlreadyClockedIn, "Already clocked in today", http.StatusConflict)
}

func NewNotClockedIn() error {
	return New(KindNotClockedIn, "Not clocked in today", http.StatusConflict)
}

func NewAlreadyClockedOut() error {
	return New(KindAlreadyClockedOut, "Already clocked out today", http.StatusConflict)
}

func NewAttendanceFailed(err error) error {
	return &DomainError{
		Kind:       KindAttendanceFailed,
		Message:    "Attendance operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Leave and report errors.

func NewLeaveNotFound() error {
	return New(KindLeaveNotFound, "Leave request not found", http.StatusNotFound)
}

func NewLeaveAlreadyDecided(status string) error {
	return New(KindLeaveAlreadyDecided, fmt.Sprintf("Leave request already %s", status), http.StatusConflict)
}

func NewReportFailed(err error) error {
	return &DomainError{
		Kind:       KindReportFailed,
		Message:    "Failed to generate report",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Generic glue errors.

func NewValidationError(message string, details map[string]any) error {
	return &DomainError{Kind: KindValidationFailed, Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

func NewUsernameTaken() error {
	return New(KindUsernameAlreadyTaken, "Username already exists", http.StatusConflict)
}

func NewNotFound(resource string) error {
	return New(KindNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewConflict(message string) error {
	return New(KindConflict, message, http.StatusConflict)
}

func NewUnauthorized(message string) error {
	return New(KindUnauthorized, message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return New(KindForbidden, message, http.StatusForbidden)
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, wrapping
// anything unrecognized as an internal error so storage detail never
// leaks to the caller.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// KindOf reports the kind of an error, or empty for non-domain errors.
func KindOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind string) bool {
	return KindOf(err) == kind
}
