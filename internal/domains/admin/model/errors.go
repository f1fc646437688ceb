package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	ErrCodeInvalidCredentials = "ADM001"
	ErrCodeTooManyAttempts    = "ADM002"
	ErrCodeInvalidToken       = "ADM003"
	ErrCodeUnknownResource    = "ADM004"
)

type AdminError struct {
	Code       string
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *AdminError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AdminError) Unwrap() error { return e.Err }

var (
	ErrInvalidCredentials = &AdminError{Code: ErrCodeInvalidCredentials, Message: "Invalid username or password"}
	ErrInvalidToken       = &AdminError{Code: ErrCodeInvalidToken, Message: "Invalid or expired refresh token"}
	ErrUnknownResource    = &AdminError{Code: ErrCodeUnknownResource, Message: "Unknown resource"}
)

// NewTooManyAttemptsError reports a locked-out caller and when to retry.
func NewTooManyAttemptsError(retryAfter time.Duration) *AdminError {
	return &AdminError{
		Code:       ErrCodeTooManyAttempts,
		Message:    "Too many failed login attempts, try again later",
		RetryAfter: retryAfter,
	}
}

// Code extracts the admin error code, or "" for other errors.
func Code(err error) string {
	var ae *AdminError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
