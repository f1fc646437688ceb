package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"consulting-backend/internal/domains/record"
)

// Application statuses
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

var Statuses = []string{StatusPending, StatusReviewing, StatusAccepted, StatusRejected}

// transitions lists the statuses reachable from each status. Accepted and
// rejected are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusReviewing, StatusRejected},
	StatusReviewing: {StatusAccepted, StatusRejected},
}

// CanTransition reports whether an application may move from one status to
// another. Staying on the same status is not a transition.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application is a candidate's submission. File fields hold the public URL
// of the stored upload.
type Application struct {
	ID                string    `json:"id" db:"id"`
	JobID             *string   `json:"jobId,omitempty" db:"job_id"`
	FullName          string    `json:"fullName" db:"full_name"`
	Email             string    `json:"email" db:"email"`
	Phone             string    `json:"phone" db:"phone"`
	Position          string    `json:"position" db:"position"`
	Department        string    `json:"department" db:"department"`
	CoverLetter       *string   `json:"coverLetter,omitempty" db:"cover_letter"`
	ResumePath        string    `json:"resumePath" db:"resume_path"`
	EducationPath     *string   `json:"educationPath,omitempty" db:"education_path"`
	CertificationPath *string   `json:"certificationPath,omitempty" db:"certification_path"`
	PortfolioPath     *string   `json:"portfolioPath,omitempty" db:"portfolio_path"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

var ApplicationTable = record.Table{
	Name:    "job_applications",
	OrderBy: []record.Order{{Column: "created_at", Desc: true}},
}

func (a *Application) GetID() string   { return a.ID }
func (a *Application) SetID(id string) { a.ID = id }

func (a *Application) Normalize() {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Phone = strings.TrimSpace(a.Phone)
	a.Position = strings.TrimSpace(a.Position)
	a.Department = strings.TrimSpace(a.Department)
	if a.Status == "" {
		a.Status = StatusPending
	}
}

func (a *Application) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Email, validation.Required, is.EmailFormat),
		validation.Field(&a.Phone, validation.Required, validation.Length(5, 30)),
		validation.Field(&a.Position, validation.Required),
		validation.Field(&a.Department, validation.Required),
		validation.Field(&a.ResumePath, validation.Required),
		validation.Field(&a.Status, validation.Required, validation.In(toAny(Statuses)...)),
	)
}

func (a *Application) BeforeCreate(now time.Time) {
	a.CreatedAt = now
	a.UpdatedAt = now
}

func (a *Application) BeforeUpdate(now time.Time) {
	a.UpdatedAt = now
}

// Guard keeps status out of plain edits (it moves through CanTransition)
// along with the job link and the uploaded files.
func (a *Application) Guard(stored *Application) {
	a.Status = stored.Status
	a.JobID = stored.JobID
	a.ResumePath = stored.ResumePath
	a.EducationPath = stored.EducationPath
	a.CertificationPath = stored.CertificationPath
	a.PortfolioPath = stored.PortfolioPath
	a.CreatedAt = stored.CreatedAt
}
