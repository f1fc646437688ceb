package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/careers/model"
	"consulting-backend/internal/domains/careers/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

// multipartOverhead is the room left for text fields on top of the files.
const multipartOverhead = 1 << 20

type ApplicationHandler struct {
	*record.Handler[model.Application, *model.Application]
	svc      *service.ApplicationService
	maxBytes int64
}

func NewApplicationHandler(svc *service.ApplicationService, maxFileBytes int64) *ApplicationHandler {
	return &ApplicationHandler{
		Handler:  record.NewHandler(svc.Records()),
		svc:      svc,
		maxBytes: maxFileBytes,
	}
}

// Apply receives a multipart application with attachments
// POST /api/careers/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	// Step 1: cap the whole body; per-file limits are checked by the service
	limit := int64(len(model.FileFields))*h.maxBytes + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	// Step 2: bind text fields
	var req model.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload too large")
			return
		}
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	// Step 3: read attachments
	files, err := h.readFiles(c)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded files")
		return
	}

	// Step 4: call service
	app, err := h.svc.Apply(c.Request.Context(), req, files)
	if err != nil {
		respondError(c, "applications", err)
		return
	}

	response.Created(c, app.ID, "Application submitted successfully", app)
}

func (h *ApplicationHandler) readFiles(c *gin.Context) ([]model.File, error) {
	var files []model.File
	for _, field := range model.FileFields {
		header, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, err
		}

		f := model.File{Field: field, Filename: header.Filename, Size: header.Size}
		// oversized files are rejected by the service without reading them
		if header.Size <= h.maxBytes {
			if f.Data, err = readAll(header); err != nil {
				return nil, err
			}
		}
		files = append(files, f)
	}
	return files, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// UpdateStatus moves an application to a new status
// PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "applications", err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// respondError maps careers errors to status codes and defers everything
// else to the generic record mapping.
func respondError(c *gin.Context, resource string, err error) {
	var cerr *model.CareersError
	if !errors.As(err, &cerr) {
		record.WriteError(c, resource, err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrJobNotFound), errors.Is(err, model.ErrApplicationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrJobClosed), errors.Is(err, model.ErrInvalidTransition):
		status = http.StatusConflict
	}
	response.ErrorResponse(c, status, cerr.Code, cerr.Message)
}
