package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"consulting-backend/internal/domains/record"
)

// Lead is a contact-form submission.
type Lead struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

var Table = record.Table{
	Name:    "contact_leads",
	File:    "leads.json",
	OrderBy: []record.Order{{Column: "created_at", Desc: true}},
}

func (l *Lead) GetID() string   { return l.ID }
func (l *Lead) SetID(id string) { l.ID = id }

func (l *Lead) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.Subject = strings.TrimSpace(l.Subject)
	l.Message = strings.TrimSpace(l.Message)
}

func (l *Lead) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&l.Email, validation.Required, is.EmailFormat),
		validation.Field(&l.Subject, validation.Required, validation.Length(1, 300)),
		validation.Field(&l.Message, validation.Required, validation.Length(1, 10000)),
	)
}

func (l *Lead) BeforeCreate(now time.Time) {
	l.CreatedAt = now
}
