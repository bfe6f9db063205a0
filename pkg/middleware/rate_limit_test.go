package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rosterd/rosterd/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func doFrom(r *gin.Engine, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// distinct source IP keeps this test's bucket isolated
	w := doFrom(r, "/ok", "10.1.0.1:1000")
	w2 := doFrom(r, "/ok", "10.1.0.1:1000")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)

	// verify metrics incremented for memory limiter
	require.GreaterOrEqual(t, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")), 2.0)
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	// very low rate to force rejections
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// first request -> allowed
	w1 := doFrom(r, "/limited", "10.1.0.2:1000")
	require.Equal(t, http.StatusOK, w1.Code)

	// immediate second request -> should be rate-limited
	w2 := doFrom(r, "/limited", "10.1.0.2:1000")
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.GreaterOrEqual(t, testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("memory")), 1.0)
}
