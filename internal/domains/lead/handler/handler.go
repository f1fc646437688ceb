package handler

import (
	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/lead/model"
	"consulting-backend/internal/domains/lead/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

type LeadHandler struct {
	*record.Handler[model.Lead, *model.Lead]
	svc *service.Service
}

func NewLeadHandler(svc *service.Service) *LeadHandler {
	return &LeadHandler{
		Handler: record.NewHandler(svc.Records()),
		svc:     svc,
	}
}

// Submit stores a contact form submission
// POST /api/contact
func (h *LeadHandler) Submit(c *gin.Context) {
	var req model.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		record.WriteError(c, "leads", err)
		return
	}

	response.Created(c, lead.ID, "Thank you for contacting us! We'll get back to you soon.", lead)
}
