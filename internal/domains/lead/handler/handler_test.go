package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/lead/handler"
	"consulting-backend/internal/domains/lead/model"
	"consulting-backend/internal/domains/lead/service"
	"consulting-backend/internal/infrastructure/filestore"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := filestore.New[model.Lead](t.TempDir(), model.Table)
	require.NoError(t, err)
	h := handler.NewLeadHandler(service.NewService(store, nil, ""))

	r := gin.New()
	r.POST("/api/contact", h.Submit)
	r.GET("/api/contact", h.ListAll)
	r.PUT("/api/contact/:id", h.Update)
	r.DELETE("/api/contact/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmit(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/contact", `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.ID)

	w = do(r, http.MethodGet, "/api/contact", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), body.ID)

	w = do(r, http.MethodDelete, "/api/contact/"+body.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/contact/"+body.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_BadInput(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/contact", `{"name":"Jo","email":"not-an-email","subject":"Hi","message":"Hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), `"email"`)

	w = do(r, http.MethodPost, "/api/contact", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/contact", `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodPut, "/api/contact/"+created.ID, `{"subject":"Follow-up"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"subject":"Follow-up"`)
	assert.Contains(t, w.Body.String(), `"name":"Jo"`)

	w = do(r, http.MethodPut, "/api/contact/"+created.ID, `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/contact/missing", `{"subject":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
