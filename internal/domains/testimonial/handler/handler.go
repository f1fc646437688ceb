package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/domains/testimonial/model"
	"consulting-backend/internal/domains/testimonial/service"
	"consulting-backend/internal/shared/response"
)

type TestimonialHandler struct {
	*record.Handler[model.Testimonial, *model.Testimonial]
	svc      *service.Service
	maxBytes int64
}

func NewTestimonialHandler(svc *service.Service, maxBytes int64) *TestimonialHandler {
	return &TestimonialHandler{
		Handler:  record.NewHandler(svc.Records(), model.ActiveFilter),
		svc:      svc,
		maxBytes: maxBytes,
	}
}

// UploadImage replaces the testimonial picture with a 400x400 thumbnail
// POST /api/testimonials/:id/image
func (h *TestimonialHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload too large")
			return
		}
		response.BadRequest(c, "image file is required")
		return
	}

	f, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}

	t, err := h.svc.SetImage(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		record.WriteError(c, "testimonials", err)
		return
	}

	response.Success(c, http.StatusOK, t)
}
