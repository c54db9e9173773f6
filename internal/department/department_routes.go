package department

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	depts := r.Group("/departments")
	{
		depts.GET("", h.List)
		depts.POST("", h.Create)
		// rute statis didaftarkan sebelum wildcard :id
		depts.GET("/stats", h.Stats)
		depts.GET("/:id", h.GetByID)
		depts.DELETE("/:id", h.Delete)
	}
}
