package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/newsletter/handler"
	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/domains/newsletter/service"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/filestore"
)

type nopSender struct{}

func (nopSender) Send(context.Context, email.Message) error { return nil }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := filestore.New[model.Subscriber](t.TempDir(), model.Table)
	require.NoError(t, err)
	h := handler.NewNewsletterHandler(service.NewService(store, nopSender{}, nil, nil))

	r := gin.New()
	r.POST("/api/newsletter/subscribe", h.Subscribe)
	r.POST("/api/newsletter/unsubscribe", h.Unsubscribe)
	r.GET("/api/newsletter/subscribers", h.ListSubscribers)
	r.POST("/api/newsletter/send-newsletter", h.SendNewsletter)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeFlow(t *testing.T) {
	r := setupRouter(t)

	w := post(r, "/api/newsletter/subscribe", `{"email":"jo@example.com","name":"Jo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"jo@example.com"`)

	w = post(r, "/api/newsletter/subscribe", `{"email":"JO@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeAlreadySubscribed)

	w = post(r, "/api/newsletter/unsubscribe", `{"email":"jo@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(r, "/api/newsletter/subscribe", `{"email":"jo@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reactivated")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/newsletter/subscribers?active=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestSubscribe_BadEmail(t *testing.T) {
	r := setupRouter(t)

	w := post(r, "/api/newsletter/subscribe", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribe_Unknown(t *testing.T) {
	r := setupRouter(t)

	w := post(r, "/api/newsletter/unsubscribe", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSubscribers_BadFilter(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/newsletter/subscribers?active=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendNewsletter(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, post(r, "/api/newsletter/subscribe", `{"email":"a@example.com"}`).Code)

	w := post(r, "/api/newsletter/send-newsletter", `{"subject":"Hi","content":"Body"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"sent":1`)
	assert.Contains(t, w.Body.String(), `"failed":0`)

	w = post(r, "/api/newsletter/send-newsletter", `{"subject":"Hi","content":"Body","async":true}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
