package health

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the probes on the engine root, outside the
// /api group, so load balancers never hit the rate limiter.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Root)
	r.GET("/health", h.Check)
}
