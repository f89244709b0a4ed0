package handler

import (
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	pinger func() error
}

// NewSystemHandler creates a new SystemHandler. pinger may be nil for
// backings with no external connection to check.
func NewSystemHandler(pinger func() error) *SystemHandler {
	return &SystemHandler{pinger: pinger}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			c.JSON(503, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(200, status)
}
