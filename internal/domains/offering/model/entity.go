package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/utils"
)

// Offering is a consulting service line (investment, tax, marketing...).
type Offering struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Slug        string  `json:"slug" db:"slug"`
	Summary     string  `json:"summary" db:"summary"`
	Description string  `json:"description" db:"description"`
	Icon        *string `json:"icon,omitempty" db:"icon"`
	SortOrder   int     `json:"sortOrder" db:"sort_order"`
	IsActive    bool    `json:"isActive" db:"is_active"`
}

var Table = record.Table{
	Name:    "services",
	OrderBy: []record.Order{{Column: "sort_order"}, {Column: "title"}},
	Unique:  []string{"slug"},
}

var ActiveFilter = record.Eq("is_active", true)

func (o *Offering) GetID() string   { return o.ID }
func (o *Offering) SetID(id string) { o.ID = id }

func (o *Offering) Normalize() {
	o.Title = strings.TrimSpace(o.Title)
	if strings.TrimSpace(o.Slug) == "" {
		o.Slug = utils.GenerateSlug(o.Title)
	} else {
		o.Slug = utils.GenerateSlug(o.Slug)
	}
}

func (o *Offering) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&o.Slug, validation.Required),
		validation.Field(&o.Summary, validation.Required, validation.Length(1, 500)),
		validation.Field(&o.Description, validation.Required),
		validation.Field(&o.SortOrder, validation.Min(0)),
	)
}
