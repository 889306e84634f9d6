// Package handler exposes liveness and readiness over HTTP for load
// balancers and orchestration probes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server serves the health endpoints.
type Server struct {
	db Pinger
}

// NewServer returns a health server. db may be nil, in which case readiness
// skips the database check.
func NewServer(db Pinger) *Server {
	return &Server{db: db}
}

// Register mounts the health routes on r.
func (s *Server) Register(r gin.IRouter) {
	r.GET("/healthz", s.Healthz)
	r.GET("/readyz", s.Readyz)
}

// Healthz is the liveness probe: the process is up and serving.
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz is the readiness probe: the process can reach its dependencies.
func (s *Server) Readyz(c *gin.Context) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
