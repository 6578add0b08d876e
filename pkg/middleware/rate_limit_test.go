package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doFrom(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0.001, 2))

	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doFrom(r, "10.0.0.1"))

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.2"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0, 1))
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1"))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("10.0.0.2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Cleanup())
	_, stale := rl.visitors["10.0.0.1"]
	assert.False(t, stale)
	_, fresh := rl.visitors["10.0.0.2"]
	assert.True(t, fresh)
}
