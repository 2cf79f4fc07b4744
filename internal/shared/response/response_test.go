package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestError_DebugModeExposesDetail(t *testing.T) {
	Init(true)
	t.Cleanup(func() { Init(false) })

	w := record(t, func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "something failed", errors.New("pg: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "pg: connection refused")
}

func TestError_WithoutDebugHidesDetail(t *testing.T) {
	Init(false)

	w := record(t, func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "something failed", errors.New("pg: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"something failed"`)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), `"error"`)
}

func TestSuccess_MergesPayloadIntoEnvelope(t *testing.T) {
	w := record(t, func(c *gin.Context) {
		Success(c, http.StatusOK, "ok", gin.H{"count": 3})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"count":3`)
}
