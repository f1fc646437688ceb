package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"consulting-backend/internal/domains/record"
)

// Subscriber is a newsletter recipient. Email is unique ignoring case.
type Subscriber struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         *string   `json:"name,omitempty" db:"name"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

var Table = record.Table{
	Name:    "newsletter_subscribers",
	File:    "subscribers.json",
	OrderBy: []record.Order{{Column: "subscribed_at", Desc: true}},
	Unique:  []string{"email"},
}

func (s *Subscriber) GetID() string   { return s.ID }
func (s *Subscriber) SetID(id string) { s.ID = id }

func (s *Subscriber) Normalize() {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	if s.Name != nil {
		name := strings.TrimSpace(*s.Name)
		if name == "" {
			s.Name = nil
		} else {
			s.Name = &name
		}
	}
}

func (s *Subscriber) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Email, validation.Required, is.EmailFormat, validation.Length(3, 254)),
		validation.Field(&s.Name, validation.NilOrNotEmpty, validation.Length(0, 200)),
	)
}

// BeforeCreate assigns the timestamp-derived id (sub_<unix-millis>).
func (s *Subscriber) BeforeCreate(now time.Time) {
	if s.ID == "" {
		s.ID = NewID(now)
	}
	s.SubscribedAt = now
	s.UpdatedAt = now
}

func (s *Subscriber) BeforeUpdate(now time.Time) {
	s.UpdatedAt = now
}

func NewID(now time.Time) string {
	return fmt.Sprintf("sub_%d", now.UnixMilli())
}

// Summary is what the public subscribe endpoint returns.
type Summary struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

func (s *Subscriber) Summary() Summary {
	return Summary{
		ID:           s.ID,
		Email:        s.Email,
		Name:         s.Name,
		IsActive:     s.IsActive,
		SubscribedAt: s.SubscribedAt,
	}
}
