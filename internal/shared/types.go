package shared

// Asynq task types
const (
	TypeSendEmail        = "email:send"
	TypeSendNewsletter   = "newsletter:send"
	TypeCloseExpiredJobs = "careers:close_expired_jobs"
)

// Asynq queues, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NewsletterPayload is the body of a TypeSendNewsletter task.
type NewsletterPayload struct {
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	HTMLContent string `json:"htmlContent,omitempty"`
	RequestedBy string `json:"requestedBy,omitempty"`
}

// CloseExpiredJobsPayload is empty; the handler uses the current time.
type CloseExpiredJobsPayload struct{}
