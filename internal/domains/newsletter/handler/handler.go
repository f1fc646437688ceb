package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/domains/newsletter/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/middleware"
	"consulting-backend/internal/shared/response"
)

// NewsletterHandler serves the public subscribe endpoints and the admin
// subscriber management. Get/Update/Delete come from the generic handler.
type NewsletterHandler struct {
	*record.Handler[model.Subscriber, *model.Subscriber]
	svc service.ServiceInterface
}

func NewNewsletterHandler(svc service.ServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{
		Handler: record.NewHandler(svc.Records()),
		svc:     svc,
	}
}

// Subscribe adds or reactivates a subscriber
// POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sub, reactivated, err := h.svc.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if reactivated {
		response.SuccessWithMessage(c, http.StatusOK, "Welcome back! Your subscription has been reactivated.", sub.Summary())
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Successfully subscribed to the newsletter", sub.Summary())
}

// Unsubscribe deactivates a subscriber by email
// POST /api/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sub, err := h.svc.Unsubscribe(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "You have been unsubscribed", sub.Summary())
}

// ListSubscribers lists subscribers, optionally only active or inactive ones
// GET /api/newsletter/subscribers?active=true
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "active must be true or false")
			return
		}
		active = &v
	}

	subs, err := h.svc.ListSubscribers(c.Request.Context(), active)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if subs == nil {
		subs = []*model.Subscriber{}
	}

	response.SuccessWithMeta(c, http.StatusOK, subs, &response.Meta{Count: len(subs)})
}

// SendNewsletter mails every active subscriber, inline or through the worker
// POST /api/newsletter/send-newsletter
func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	var req model.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Async {
		taskID, err := h.svc.SendAsync(c.Request.Context(), req, c.GetString(middleware.ContextKeyUsername))
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.SuccessWithMessage(c, http.StatusAccepted, "Newsletter queued", gin.H{"taskId": taskID})
		return
	}

	tally, err := h.svc.Send(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Newsletter sent", tally)
}

func (h *NewsletterHandler) respondError(c *gin.Context, err error) {
	var nerr *model.NewsletterError
	if !errors.As(err, &nerr) {
		record.WriteError(c, "subscribers", err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrAlreadySubscribed):
		status = http.StatusConflict
	case errors.Is(err, model.ErrSubscriberNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrQueueUnavailable):
		status = http.StatusServiceUnavailable
	}
	response.ErrorResponse(c, status, nerr.Code, nerr.Message)
}
