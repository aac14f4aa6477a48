package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

// NewRouter registers the run API routes.
func NewRouter(h *Handler, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(log))

	r.GET("/healthz", h.Health)

	runs := r.Group("/api/runs")
	{
		runs.POST("", h.StartRun)
		runs.GET("/current", h.CurrentRun)
		runs.GET("/events", h.Events)
		runs.GET("/ws", h.Stream)
	}
	return r
}

func accessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(c.Request.Context(), "%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
