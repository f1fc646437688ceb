package model

// SubmitLeadRequest is the public contact form body.
type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r SubmitLeadRequest) ToLead() *Lead {
	return &Lead{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}
