package email

// Message is one outgoing email. Text is required; HTML is optional and sent
// as the preferred alternative.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
	ReplyTo string `json:"replyTo,omitempty"`
}

// LeadNotification tells the firm about a new contact-form lead.
type LeadNotification struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ApplicationConfirmation thanks a candidate for applying.
type ApplicationConfirmation struct {
	FullName string
	Email    string
	Position string
}

// ApplicationNotification tells the firm about a new application.
type ApplicationNotification struct {
	FullName   string
	Email      string
	Phone      string
	Position   string
	Department string
	ResumeURL  string
}

// Welcome greets a new or returning newsletter subscriber.
type Welcome struct {
	Email string
	Name  string
}
