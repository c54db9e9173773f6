package app

import (
	"os"
	"strings"
	"time"

	"hr-platform/internal/middleware"
	"hr-platform/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("✅ Database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Cache mati bukan alasan API ikut mati
		logger.Warn("⚠️ Redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("✅ Redis connection established")
	}

	// 2. Schema
	if err := runMigrations(gormDB); err != nil {
		return err
	}
	logger.Info("✅ Migrations applied")

	// 3. Global middleware
	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig()))
	// kira-kira 100 request per 15 menit per IP
	router.Use(middleware.RateLimitByIP(rate.Every(9*time.Second), 100))

	// 4. Register Modules & Routes
	return registerModules(router, db, gormDB, redisClient)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID"}
	cfg.MaxAge = 12 * time.Hour

	return cfg
}
