package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"consulting-backend/internal/domains/record"
)

// Testimonial is a client quote shown on the public site.
type Testimonial struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Company   string    `json:"company" db:"company"`
	Position  string    `json:"position" db:"position"`
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"`
	Service   *string   `json:"service,omitempty" db:"service"`
	Image     *string   `json:"image,omitempty" db:"image"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

var Table = record.Table{
	Name:    "testimonials",
	OrderBy: []record.Order{{Column: "created_at", Desc: true}},
}

var ActiveFilter = record.Eq("is_active", true)

func (t *Testimonial) GetID() string   { return t.ID }
func (t *Testimonial) SetID(id string) { t.ID = id }

func (t *Testimonial) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Company = strings.TrimSpace(t.Company)
	t.Position = strings.TrimSpace(t.Position)
	t.Content = strings.TrimSpace(t.Content)
}

func (t *Testimonial) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&t.Company, validation.Required),
		validation.Field(&t.Position, validation.Required),
		validation.Field(&t.Content, validation.Required),
		validation.Field(&t.Rating, validation.Required.Error("must be between 1 and 5"), validation.Min(1), validation.Max(5)),
	)
}

func (t *Testimonial) BeforeCreate(now time.Time) {
	t.CreatedAt = now
}
