package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-case-tracker/internal/core/server"
	"go-case-tracker/internal/store"
	"go-case-tracker/internal/transport/http/middleware"
)

type fixedStats store.Stats

func (f fixedStats) Stats() store.Stats { return store.Stats(f) }

func newEngine(t *testing.T, o server.Options) *gin.Engine {
	t.Helper()
	o.Mode = gin.TestMode
	r := server.NewRouter(zaptest.NewLogger(t), o)
	MountOps(r, fixedStats{Users: 4, Cases: 6, Tasks: 8})
	return r
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newEngine(t, server.Options{})

	w := get(r, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int `json:"code"`
		Data struct {
			Status string      `json:"status"`
			Stats  store.Stats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Zero(t, body.Code)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, 6, body.Data.Stats.Cases)
	assert.Equal(t, 8, body.Data.Stats.Tasks)
	assert.NotEmpty(t, w.Header().Get(middleware.KeyRequestID))
}

func TestRequestIDEchoed(t *testing.T) {
	r := newEngine(t, server.Options{})
	w := get(r, "/health", http.Header{middleware.KeyRequestID: {"req-42"}})
	assert.Equal(t, "req-42", w.Header().Get(middleware.KeyRequestID))
}

func TestMetricsExposed(t *testing.T) {
	r := newEngine(t, server.Options{})
	get(r, "/health", nil)

	w := get(r, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	r := newEngine(t, server.Options{RPS: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, get(r, "/health", nil).Code)
	w := get(r, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestUnknownRoute(t *testing.T) {
	r := newEngine(t, server.Options{})
	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/cases", nil).Code)
}
