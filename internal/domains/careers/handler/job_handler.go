package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/careers/model"
	"consulting-backend/internal/domains/careers/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

// JobHandler serves job postings. The public list only shows active ones.
type JobHandler struct {
	*record.Handler[model.Posting, *model.Posting]
	svc *service.PostingService
}

func NewJobHandler(svc *service.PostingService) *JobHandler {
	return &JobHandler{
		Handler: record.NewHandler(svc.Records(), model.ActiveFilter),
		svc:     svc,
	}
}

// RecordView increments the view counter
// POST /api/jobs/:id/view
func (h *JobHandler) RecordView(c *gin.Context) {
	views, err := h.svc.RecordView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "jobs", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "views": views})
}
