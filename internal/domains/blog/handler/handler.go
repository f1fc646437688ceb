package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/blog/model"
	"consulting-backend/internal/domains/blog/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

// BlogHandler adds slug lookup, tags and publishing to the CRUD routes.
type BlogHandler struct {
	*record.Handler[model.Post, *model.Post]
	svc *service.Service
}

func NewBlogHandler(svc *service.Service) *BlogHandler {
	return &BlogHandler{
		Handler: record.NewHandler(svc.Records(), model.PublicFilter),
		svc:     svc,
	}
}

// GetBySlug returns a published post
// GET /api/blog/slug/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ListPosts lists published posts, optionally by tag
// GET /api/blog?tag=tax
func (h *BlogHandler) ListPosts(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		h.List(c)
		return
	}

	posts, err := h.svc.ListByTag(c.Request.Context(), tag)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{Count: len(posts)})
}

// Tags returns the tag cloud
// GET /api/blog/tags
func (h *BlogHandler) Tags(c *gin.Context) {
	tags, err := h.svc.Tags(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if tags == nil {
		tags = []service.TagCount{}
	}
	response.Success(c, http.StatusOK, tags)
}

// Publish makes a draft visible
// POST /api/blog/:id/publish
func (h *BlogHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish turns a post back into a draft
// POST /api/blog/:id/unpublish
func (h *BlogHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *BlogHandler) setPublished(c *gin.Context, published bool) {
	post, err := h.svc.SetPublished(c.Request.Context(), c.Param("id"), published)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

func (h *BlogHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrPostNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodePostNotFound, "Blog post not found")
		return
	}
	record.WriteError(c, "blog", err)
}
