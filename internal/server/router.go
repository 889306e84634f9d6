// Package server assembles the HTTP router from handler dependencies.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "bizconnect/backend/internal/auth/handler"
	healthhandler "bizconnect/backend/internal/health/handler"
)

// Deps holds optional handler dependencies for the router.
type Deps struct {
	// Auth serves login/logout/me and provides the RequireAuth middleware.
	// If nil, the auth routes are not mounted.
	Auth *authhandler.Handler
	// HealthPinger is used by the readiness probe (e.g. *sql.DB). If nil,
	// readiness skips the database check.
	HealthPinger healthhandler.Pinger
	// Log receives per-request access logs. If nil, requests are not logged.
	Log *zap.Logger
}

// NewRouter builds the gin engine with recovery, request logging, health
// probes, and the auth routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Log != nil {
		r.Use(requestLogger(deps.Log))
	}

	healthhandler.NewServer(deps.HealthPinger).Register(r)
	if deps.Auth != nil {
		deps.Auth.Register(r)
	}
	return r
}

// requestLogger emits one structured access-log line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		log.Info("http request", fields...)
	}
}
