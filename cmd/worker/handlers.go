package main

import (
	"github.com/hibiken/asynq"

	careersJob "consulting-backend/internal/domains/careers/job"
	newsletterJob "consulting-backend/internal/domains/newsletter/job"
	emailJob "consulting-backend/internal/infrastructure/email/job"
	"consulting-backend/internal/shared"
	"consulting-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sendEmail      *emailJob.SendEmailHandler
	sendNewsletter *newsletterJob.SendNewsletterHandler
	closeExpired   *careersJob.CloseExpiredJobsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sendEmail:      emailJob.NewSendEmailHandler(c.Sender),
		sendNewsletter: newsletterJob.NewSendNewsletterHandler(c.NewsletterService),
		closeExpired:   careersJob.NewCloseExpiredJobsHandler(c.PostingService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendEmail, h.sendEmail.ProcessTask)
	mux.HandleFunc(shared.TypeSendNewsletter, h.sendNewsletter.ProcessTask)
	mux.HandleFunc(shared.TypeCloseExpiredJobs, h.closeExpired.ProcessTask)
}
