package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type SubscribeRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

func (r UnsubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type SendRequest struct {
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	HTMLContent string `json:"htmlContent,omitempty"`
	Async       bool   `json:"async,omitempty"`
}

func (r *SendRequest) Normalize() {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Content = strings.TrimSpace(r.Content)
}

func (r SendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Content, validation.Required),
	)
}

// Tally is the outcome of a synchronous newsletter send.
type Tally struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
