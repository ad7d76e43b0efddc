package controllers

import (
	"context"
	"net/http"
	"time"

	"checkin/response"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store   Pinger
	timeout time.Duration
}

func NewHealthController(store Pinger, timeout time.Duration) *HealthController {
	return &HealthController{store: store, timeout: timeout}
}

// Ping answers liveness probes
func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Healthz reports record store reachability
func (h *HealthController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.Unavailable(c, "record store unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
