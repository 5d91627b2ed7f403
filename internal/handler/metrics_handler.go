package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type metricsSource interface {
	Handler() http.Handler
	Snapshot() dto.MetricsSnapshot
}

// UpstreamProber checks the journal API.
type UpstreamProber interface {
	Health(ctx context.Context) (models.Analytics, error)
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics metricsSource
	probe   UpstreamProber
	timeout time.Duration
}

// NewMetricsHandler constructs a metrics handler. probeTimeout bounds the readiness call.
func NewMetricsHandler(metrics metricsSource, probe UpstreamProber, probeTimeout time.Duration) *MetricsHandler {
	if probeTimeout <= 0 {
		probeTimeout = 3 * time.Second
	}
	return &MetricsHandler{metrics: metrics, probe: probe, timeout: probeTimeout}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness checks.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness
// @Description Probes the journal API and reports portal traffic counters
// @Tags Ops
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	var snapshot *dto.MetricsSnapshot
	if h.metrics != nil {
		s := h.metrics.Snapshot()
		snapshot = &s
	}
	if h.probe == nil {
		response.OK(c, gin.H{"status": "ok", "metrics": snapshot})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	upstream, err := h.probe.Health(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "ok", "upstream": upstream, "metrics": snapshot})
}
