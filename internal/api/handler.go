package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/paper-flow/internal/jobs"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

// Handler serves the run API.
type Handler struct {
	ctx     context.Context
	runner  *jobs.Runner
	manager *jobs.Manager
	bus     *jobs.EventBus
	run     jobs.RunFunc
	logger  logger.Logger
}

// NewHandler creates a Handler. Runs started through the API use ctx, which
// should live as long as the server.
func NewHandler(ctx context.Context, runner *jobs.Runner, manager *jobs.Manager, bus *jobs.EventBus, run jobs.RunFunc, log logger.Logger) *Handler {
	return &Handler{
		ctx:     ctx,
		runner:  runner,
		manager: manager,
		bus:     bus,
		run:     run,
		logger:  log,
	}
}

// StartRun handles POST /api/runs.
func (h *Handler) StartRun(c *gin.Context) {
	id, err := h.runner.Launch(h.ctx, h.run)
	if err != nil {
		if errors.Is(err, jobs.ErrRunAlreadyActive) {
			respondError(c, http.StatusConflict, ErrCodeRunActive, "a run is already in progress")
			return
		}
		h.logger.Error(c.Request.Context(), "Failed to start run: %v", err)
		respondError(c, http.StatusInternalServerError, ErrCodeInternal, "failed to start run")
		return
	}
	respond(c, http.StatusAccepted, gin.H{"id": id})
}

// CurrentRun handles GET /api/runs/current.
func (h *Handler) CurrentRun(c *gin.Context) {
	respond(c, http.StatusOK, h.manager.Current())
}

// Events handles GET /api/runs/events?since=N.
func (h *Handler) Events(c *gin.Context) {
	since, ok := parseSince(c)
	if !ok {
		return
	}
	events := h.bus.Since(since)
	if events == nil {
		events = []jobs.Event{}
	}
	respond(c, http.StatusOK, events)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "running": h.manager.IsRunning()})
}

func parseSince(c *gin.Context) (int64, bool) {
	raw := c.Query("since")
	if raw == "" {
		return 0, true
	}
	since, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || since < 0 {
		badRequest(c, "since must be a non-negative integer")
		return 0, false
	}
	return since, true
}
