package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Live handles GET /health/live.
func (h *Handlers) Live() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready handles GET /health/ready: the gateway is ready when its secret
// store backend answers a ping.
func (h *Handlers) Ready() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.secrets.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "secret store is not reachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
