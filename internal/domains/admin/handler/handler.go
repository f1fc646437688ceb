package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	cm "consulting-backend/internal/contentmanager"
	"consulting-backend/internal/domains/admin/model"
	"consulting-backend/internal/domains/admin/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/middleware"
	"consulting-backend/internal/shared/response"
)

type AdminHandler struct {
	auth    *service.AuthService
	exports *service.ExportService
}

func NewAdminHandler(auth *service.AuthService, exports *service.ExportService) *AdminHandler {
	return &AdminHandler{auth: auth, exports: exports}
}

// Login issues an admin token pair
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		record.WriteError(c, "admin", record.Invalid(err))
		return
	}

	ip := c.GetString(middleware.ContextKeyClientIP)
	if ip == "" {
		ip = c.ClientIP()
	}

	tokens, err := h.auth.Login(c.Request.Context(), req, ip)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Login successful", tokens)
}

// Refresh trades a refresh token for a new pair
// POST /api/admin/refresh
func (h *AdminHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		record.WriteError(c, "admin", record.Invalid(err))
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Me returns the caller taken from the access token
// GET /api/admin/me
func (h *AdminHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, model.Profile{
		Username: c.GetString(middleware.ContextKeyUsername),
		Role:     c.GetString(middleware.ContextKeyRole),
	})
}

// ListSchemas returns every admin tab declaration
// GET /api/admin/schemas
func (h *AdminHandler) ListSchemas(c *gin.Context) {
	response.Success(c, http.StatusOK, service.Tabs())
}

// GetSchema returns one tab declaration
// GET /api/admin/schemas/:resource
func (h *AdminHandler) GetSchema(c *gin.Context) {
	tab, ok := service.LookupTab(c.Param("resource"))
	if !ok {
		response.NotFound(c, "Unknown resource")
		return
	}
	response.Success(c, http.StatusOK, tab)
}

// Export downloads a resource as CSV or XLSX
// GET /api/admin/export/:resource?format=csv|xlsx
func (h *AdminHandler) Export(c *gin.Context) {
	resource := c.Param("resource")
	format := c.DefaultQuery("format", service.FormatCSV)

	// Step 1: reject before any bytes are written
	if err := h.exports.Check(resource, format); err != nil {
		h.respondError(c, err)
		return
	}

	// Step 2: render into memory so a failed query still gets a JSON error
	var buf bytes.Buffer
	if err := h.exports.Export(c.Request.Context(), resource, format, &buf); err != nil {
		h.respondError(c, err)
		return
	}

	contentType := cm.ContentTypeCSV
	if format == service.FormatXLSX {
		contentType = cm.ContentTypeXLSX
	}
	filename := fmt.Sprintf("%s-%s.%s", resource, time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *AdminHandler) respondError(c *gin.Context, err error) {
	var ae *model.AdminError
	if !errors.As(err, &ae) {
		record.WriteError(c, "admin", err)
		return
	}

	switch ae.Code {
	case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidToken:
		response.ErrorResponse(c, http.StatusUnauthorized, ae.Code, ae.Message)
	case model.ErrCodeTooManyAttempts:
		c.Header("Retry-After", strconv.Itoa(int(ae.RetryAfter.Seconds())))
		response.ErrorResponse(c, http.StatusTooManyRequests, ae.Code, ae.Message)
	case model.ErrCodeUnknownResource:
		response.ErrorResponse(c, http.StatusNotFound, ae.Code, ae.Message)
	default:
		record.WriteError(c, "admin", err)
	}
}
