package stats

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/stats")
	{
		group.GET("/dashboard", h.Dashboard)
		group.GET("/activity", h.RecentActivity)
	}
}
