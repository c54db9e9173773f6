package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Root is the liveness banner at "/".
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Employee Management System API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    "healthy",
		"version":   "1.0.0",
	})
}

// Check is the detailed probe at "/health".
func (h *Handler) Check(c *gin.Context) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(processStart).Seconds()),
		"memory": gin.H{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
			"num_gc":      mem.NumGC,
			"goroutines":  runtime.NumGoroutine(),
		},
		"environment": env,
	})
}
