package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-case-tracker/internal/store"
	resp "go-case-tracker/internal/transport/http/response"
)

// StatsSource is satisfied by *store.Store.
type StatsSource interface {
	Stats() store.Stats
}

type health struct {
	Status string      `json:"status"`
	Stats  store.Stats `json:"stats"`
}

// MountOps registers /health and /metrics.
func MountOps(r gin.IRoutes, src StatsSource) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(health{Status: "ok", Stats: src.Stats()}))
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
