package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeJobNotFound         = "CAR001"
	ErrCodeJobClosed           = "CAR002"
	ErrCodeInvalidTransition   = "CAR003"
	ErrCodeApplicationNotFound = "CAR004"
)

var (
	ErrJobNotFound         = errors.New("job posting not found")
	ErrJobClosed           = errors.New("job posting is closed")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrApplicationNotFound = errors.New("application not found")
)

// CareersError carries a stable code next to the client message.
type CareersError struct {
	Code    string
	Message string
	Err     error
}

func (e *CareersError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CareersError) Unwrap() error {
	return e.Err
}

func NewJobNotFoundError() *CareersError {
	return &CareersError{
		Code:    ErrCodeJobNotFound,
		Message: "Job posting not found",
		Err:     ErrJobNotFound,
	}
}

func NewJobClosedError(title string) *CareersError {
	return &CareersError{
		Code:    ErrCodeJobClosed,
		Message: fmt.Sprintf("Applications for %q are closed", title),
		Err:     ErrJobClosed,
	}
}

func NewInvalidTransitionError(from, to string) *CareersError {
	return &CareersError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("Cannot change status from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewApplicationNotFoundError() *CareersError {
	return &CareersError{
		Code:    ErrCodeApplicationNotFound,
		Message: "Application not found",
		Err:     ErrApplicationNotFound,
	}
}
