package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"consulting-backend/internal/domains/record"
)

// Job types offered on the careers page.
const (
	TypeFullTime   = "full-time"
	TypePartTime   = "part-time"
	TypeContract   = "contract"
	TypeInternship = "internship"
)

var JobTypes = []string{TypeFullTime, TypePartTime, TypeContract, TypeInternship}

// Posting is an open position. Views and Applications are counters: they
// start at zero, move through Repository.Increment and are kept by Guard
// when a posting is edited.
type Posting struct {
	ID                  string     `json:"id" db:"id"`
	Title               string     `json:"title" db:"title"`
	Department          string     `json:"department" db:"department"`
	Location            string     `json:"location" db:"location"`
	Type                string     `json:"type" db:"type"`
	Description         string     `json:"description" db:"description"`
	Requirements        string     `json:"requirements" db:"requirements"`
	Responsibilities    string     `json:"responsibilities" db:"responsibilities"`
	Salary              *string    `json:"salary,omitempty" db:"salary"`
	Benefits            *string    `json:"benefits,omitempty" db:"benefits"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty" db:"application_deadline"`
	IsActive            bool       `json:"isActive" db:"is_active"`
	Views               int        `json:"views" db:"views"`
	Applications        int        `json:"applications" db:"applications"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

var PostingTable = record.Table{
	Name:    "job_postings",
	OrderBy: []record.Order{{Column: "created_at", Desc: true}},
}

// ActiveFilter limits the public careers page to open positions.
var ActiveFilter = record.Eq("is_active", true)

func (p *Posting) GetID() string   { return p.ID }
func (p *Posting) SetID(id string) { p.ID = id }

func (p *Posting) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Department = strings.TrimSpace(p.Department)
	p.Location = strings.TrimSpace(p.Location)
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
}

func (p *Posting) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Department, validation.Required),
		validation.Field(&p.Location, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In(toAny(JobTypes)...)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Requirements, validation.Required),
		validation.Field(&p.Responsibilities, validation.Required),
		validation.Field(&p.Views, validation.Min(0)),
		validation.Field(&p.Applications, validation.Min(0)),
	)
}

func (p *Posting) BeforeCreate(now time.Time) {
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Views = 0
	p.Applications = 0
}

func (p *Posting) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
}

func (p *Posting) Guard(stored *Posting) {
	p.Views = stored.Views
	p.Applications = stored.Applications
	p.CreatedAt = stored.CreatedAt
}

// Expired reports whether the deadline has passed at now.
func (p *Posting) Expired(now time.Time) bool {
	return p.ApplicationDeadline != nil && p.ApplicationDeadline.Before(now)
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
