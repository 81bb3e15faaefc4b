package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpointExposesCacheCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()

	reg.ObserveCache("book_detail", "miss")
	reg.ObserveCache("book_detail", "hit")
	reg.ObserveCache("book_detail", "hit")

	r := gin.New()
	r.Use(reg.GinMiddleware())
	r.GET("/metrics", reg.Handler())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `bookshelf_cache_requests_total{cache="book_detail",result="hit"} 2`)
	assert.Contains(t, body, `bookshelf_cache_requests_total{cache="book_detail",result="miss"} 1`)
}

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()

	r := gin.New()
	r.Use(reg.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", reg.Handler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `bookshelf_http_requests_total{method="GET",route="/ping",status="200"} 3`)
}
