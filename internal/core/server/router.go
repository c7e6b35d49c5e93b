package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-case-tracker/internal/transport/http/middleware"
)

type Options struct {
	Mode  string // gin mode; release unless set
	RPS   float64
	Burst int
}

// NewRouter returns an engine with access logging, panic recovery, CORS,
// request ids, rate limiting and request metrics installed.
func NewRouter(l *zap.Logger, o Options) *gin.Engine {
	if o.Mode == "" {
		o.Mode = gin.ReleaseMode
	}
	gin.SetMode(o.Mode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(l, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/metrics"},
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", c.GetString(middleware.KeyRequestID))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(l, true))
	r.Use(cors.Default())
	r.Use(middleware.Metrics("ops"))
	r.Use(middleware.RateLimit(rate.Limit(o.RPS), o.Burst))
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
