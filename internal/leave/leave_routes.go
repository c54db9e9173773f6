package leave

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", h.List)
		leaves.POST("", h.Apply)
		leaves.PUT("/:id/status", h.SetStatus)
		leaves.DELETE("/:id", h.Delete)
	}
}
