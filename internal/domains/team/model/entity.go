package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"consulting-backend/internal/domains/record"
)

// Member is a consultant shown on the team page.
type Member struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Role      string  `json:"role" db:"role"`
	Bio       string  `json:"bio" db:"bio"`
	Email     *string `json:"email,omitempty" db:"email"`
	LinkedIn  *string `json:"linkedin,omitempty" db:"linkedin"`
	Image     *string `json:"image,omitempty" db:"image"`
	SortOrder int     `json:"sortOrder" db:"sort_order"`
	IsActive  bool    `json:"isActive" db:"is_active"`
}

var Table = record.Table{
	Name:    "team_members",
	OrderBy: []record.Order{{Column: "sort_order"}, {Column: "name"}},
}

var ActiveFilter = record.Eq("is_active", true)

func (m *Member) GetID() string   { return m.ID }
func (m *Member) SetID(id string) { m.ID = id }

func (m *Member) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
}

func (m *Member) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Role, validation.Required),
		validation.Field(&m.Email, is.EmailFormat),
		validation.Field(&m.LinkedIn, is.URL),
		validation.Field(&m.SortOrder, validation.Min(0)),
	)
}
