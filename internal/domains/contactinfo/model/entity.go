package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"consulting-backend/internal/domains/record"
)

// Contact item types
const (
	TypeSocial  = "social"
	TypePhone   = "phone"
	TypeEmail   = "email"
	TypeAddress = "address"
	TypeWebsite = "website"
)

var Types = []string{TypeSocial, TypePhone, TypeEmail, TypeAddress, TypeWebsite}

// Item is one footer/contact entry, e.g. a phone number or a social link.
type Item struct {
	ID        string  `json:"id" db:"id"`
	Type      string  `json:"type" db:"type"`
	Label     string  `json:"label" db:"label"`
	Value     string  `json:"value" db:"value"`
	Platform  *string `json:"platform,omitempty" db:"platform"`
	Icon      *string `json:"icon,omitempty" db:"icon"`
	IsActive  bool    `json:"isActive" db:"is_active"`
	SortOrder int     `json:"sortOrder" db:"sort_order"`
}

var Table = record.Table{
	Name:    "contact_info",
	OrderBy: []record.Order{{Column: "sort_order"}, {Column: "label"}},
}

var ActiveFilter = record.Eq("is_active", true)

func (i *Item) GetID() string   { return i.ID }
func (i *Item) SetID(id string) { i.ID = id }

func (i *Item) Normalize() {
	i.Type = strings.ToLower(strings.TrimSpace(i.Type))
	i.Label = strings.TrimSpace(i.Label)
	i.Value = strings.TrimSpace(i.Value)
}

// Validate checks the value against the item type: emails and websites
// must be well formed.
func (i *Item) Validate() error {
	valueRules := []validation.Rule{validation.Required}
	switch i.Type {
	case TypeEmail:
		valueRules = append(valueRules, is.EmailFormat)
	case TypeWebsite, TypeSocial:
		valueRules = append(valueRules, is.URL)
	}

	types := make([]interface{}, len(Types))
	for n, t := range Types {
		types[n] = t
	}

	return validation.ValidateStruct(i,
		validation.Field(&i.Type, validation.Required, validation.In(types...)),
		validation.Field(&i.Label, validation.Required),
		validation.Field(&i.Value, valueRules...),
		validation.Field(&i.SortOrder, validation.Min(0)),
	)
}
