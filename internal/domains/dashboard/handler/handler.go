package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/dashboard/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

type DashboardHandler struct {
	svc *service.Service
}

func NewDashboardHandler(svc *service.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetSnapshot returns the dashboard counters
// GET /api/admin/dashboard
func (h *DashboardHandler) GetSnapshot(c *gin.Context) {
	if c.Query("refresh") == "true" {
		h.svc.Invalidate(c.Request.Context())
	}

	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		record.WriteError(c, "dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, snap)
}
