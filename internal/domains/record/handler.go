package record

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/shared/response"
)

// Handler exposes the uniform CRUD route set for one resource.
type Handler[T any, PT Ptr[T]] struct {
	svc    *Service[T, PT]
	public []Filter
}

// NewHandler builds a CRUD handler. publicFilters restrict what the public
// list and get endpoints can see (e.g. is_active = true).
func NewHandler[T any, PT Ptr[T]](svc *Service[T, PT], publicFilters ...Filter) *Handler[T, PT] {
	return &Handler[T, PT]{svc: svc, public: publicFilters}
}

// List returns the publicly visible records.
// GET /api/{resource}
func (h *Handler[T, PT]) List(c *gin.Context) {
	h.list(c, h.public)
}

// ListAll returns every record regardless of visibility.
// GET /api/admin/{resource}
func (h *Handler[T, PT]) ListAll(c *gin.Context) {
	h.list(c, nil)
}

func (h *Handler[T, PT]) list(c *gin.Context, filters []Filter) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.svc.List(c.Request.Context(), ListOptions{Filters: filters, Limit: limit})
	if err != nil {
		WriteError(c, h.svc.Name(), err)
		return
	}
	if records == nil {
		records = []*T{}
	}

	response.SuccessWithMeta(c, http.StatusOK, records, &response.Meta{Count: len(records), Limit: limit})
}

// Get returns one record.
// GET /api/{resource}/:id
func (h *Handler[T, PT]) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, h.svc.Name(), err)
		return
	}
	for _, f := range h.public {
		if !Matches(rec, f) {
			WriteError(c, h.svc.Name(), ErrNotFound)
			return
		}
	}

	response.Success(c, http.StatusOK, rec)
}

// Create inserts the request body as a new record.
// POST /api/{resource}
func (h *Handler[T, PT]) Create(c *gin.Context) {
	rec := new(T)
	if err := c.ShouldBindJSON(rec); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	PT(rec).SetID("")

	if err := h.svc.Create(c.Request.Context(), rec); err != nil {
		WriteError(c, h.svc.Name(), err)
		return
	}

	response.Success(c, http.StatusCreated, rec)
}

// Update applies the provided fields onto the stored record. Entities
// implementing Guard keep their server-managed fields.
// PUT /api/{resource}/:id
func (h *Handler[T, PT]) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	var stored *T
	if _, guarded := any(PT(new(T))).(Guard[T]); guarded {
		// a separate load, so unmarshalling into pointer fields cannot alias it
		if stored, err = h.svc.Get(ctx, c.Param("id")); err != nil {
			WriteError(c, h.svc.Name(), err)
			return
		}
	}

	rec, err := h.svc.Update(ctx, c.Param("id"), func(rec *T) error {
		if err := json.Unmarshal(body, rec); err != nil {
			return err
		}
		if g, ok := any(PT(rec)).(Guard[T]); ok {
			g.Guard(stored)
		}
		return nil
	})
	if err != nil {
		WriteError(c, h.svc.Name(), err)
		return
	}

	response.Success(c, http.StatusOK, rec)
}

// Delete removes a record.
// DELETE /api/{resource}/:id
func (h *Handler[T, PT]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		WriteError(c, h.svc.Name(), err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Deleted successfully", gin.H{"id": c.Param("id")})
}

// WriteError maps store and validation errors onto the HTTP taxonomy:
// 400 validation, 404 not found, 409 conflict, 500 everything else.
func WriteError(c *gin.Context, resource string, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details(ve.Err))
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Not found")
	case errors.Is(err, ErrConflict):
		response.Conflict(c, "A record with the same unique value already exists")
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("resource", resource).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		response.InternalServerError(c)
	}
}

// details keeps structured validation errors (field -> message) as-is and
// flattens anything else to its message.
func details(err error) any {
	if m, ok := err.(json.Marshaler); ok {
		return m
	}
	return err.Error()
}
