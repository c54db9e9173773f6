package app

import (
	"database/sql"

	"hr-platform/internal/department"
	"hr-platform/internal/employee"
	"hr-platform/internal/health"
	"hr-platform/internal/leave"
	"hr-platform/internal/messaging/kafka"
	"hr-platform/internal/shared/cache"
	"hr-platform/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Cache invalidation ---
	invalidator := cache.NewInvalidator(rdb)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, invalidator)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, employeeService, outboxRepo, invalidator)
	departmentService := department.NewServiceWithOutbox(db, departmentRepo, employeeRepo, outboxRepo, invalidator)
	statsService := stats.NewService(employeeRepo, leaveRepo, departmentRepo, rdb)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	statsHandler := stats.NewHandler(statsService)
	healthHandler := health.NewHandler()

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
		stats.RegisterRoutes(api, statsHandler)
	}

	health.RegisterRoutes(router, healthHandler)

	return nil
}
