package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(remote string, headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.RemoteAddr = remote
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	assert.Equal(t, "203.0.113.7", ExtractClientIP(newCtx("10.0.0.1:5000", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
	})))
	assert.Equal(t, "198.51.100.4", ExtractClientIP(newCtx("10.0.0.1:5000", map[string]string{
		"X-Forwarded-For": "garbage",
		"X-Real-IP":       "198.51.100.4",
	})))
	assert.Equal(t, "192.0.2.9", ExtractClientIP(newCtx("192.0.2.9:443", nil)))
	assert.Equal(t, "127.0.0.1", ExtractClientIP(newCtx("not-an-ip", nil)))
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("127.0.0.1"))
	assert.True(t, IsPrivateIP("fd00::1"))
	assert.False(t, IsPrivateIP("8.8.8.8"))
	assert.False(t, IsPrivateIP("nope"))
}
