package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Upload fields accepted by the apply form.
const (
	FileResume        = "resume"
	FileEducation     = "education"
	FileCertification = "certification"
	FilePortfolio     = "portfolio"
)

var FileFields = []string{FileResume, FileEducation, FileCertification, FilePortfolio}

// ApplyRequest is the text part of the multipart apply form.
type ApplyRequest struct {
	JobID       string `form:"jobId"`
	FullName    string `form:"fullName"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Position    string `form:"position"`
	Department  string `form:"department"`
	CoverLetter string `form:"coverLetter"`
}

func (r ApplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, validation.Required),
	)
}

// File is one uploaded attachment, already read into memory.
type File struct {
	Field    string
	Filename string
	Size     int64
	Data     []byte
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(toAny(Statuses)...)),
	)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ToApplication maps the form onto a pending application. File URLs are
// filled in by the service after upload.
func (r ApplyRequest) ToApplication() *Application {
	return &Application{
		JobID:       optional(r.JobID),
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Position:    r.Position,
		Department:  r.Department,
		CoverLetter: optional(r.CoverLetter),
		Status:      StatusPending,
	}
}
