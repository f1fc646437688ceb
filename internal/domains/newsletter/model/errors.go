package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeAlreadySubscribed  = "NWS001"
	ErrCodeSubscriberNotFound = "NWS002"
	ErrCodeQueueUnavailable   = "NWS003"
)

var (
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrQueueUnavailable   = errors.New("background queue not configured")
)

// NewsletterError carries a stable code next to the client message.
type NewsletterError struct {
	Code    string
	Message string
	Err     error
}

func (e *NewsletterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NewsletterError) Unwrap() error {
	return e.Err
}

func NewAlreadySubscribedError(email string) *NewsletterError {
	return &NewsletterError{
		Code:    ErrCodeAlreadySubscribed,
		Message: fmt.Sprintf("%s is already subscribed", email),
		Err:     ErrAlreadySubscribed,
	}
}

func NewSubscriberNotFoundError() *NewsletterError {
	return &NewsletterError{
		Code:    ErrCodeSubscriberNotFound,
		Message: "Subscriber not found",
		Err:     ErrSubscriberNotFound,
	}
}

func NewQueueUnavailableError() *NewsletterError {
	return &NewsletterError{
		Code:    ErrCodeQueueUnavailable,
		Message: "Background sending is not available",
		Err:     ErrQueueUnavailable,
	}
}
