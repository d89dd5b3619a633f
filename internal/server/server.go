// Package server provides HTTP server setup and configuration.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleetsight/insights/internal/auth"
	"github.com/fleetsight/insights/internal/config"
	"github.com/fleetsight/insights/internal/handlers"
	"github.com/fleetsight/insights/internal/middleware"
	"github.com/fleetsight/insights/internal/repository"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config     *config.Config
	PacketRepo repository.PacketRepository

	// SnapshotCache is optional: nil when Redis is not configured.
	SnapshotCache handlers.SnapshotCache
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	// Release mode keeps ANSI color codes out of the logs.
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// The dashboard is a browser client on another origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(RequestIDMiddleware())
	router.Use(middleware.NewRateLimitMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	jwtService := auth.NewJWTService(
		deps.Config.Auth.JWTSecret,
		deps.Config.Auth.JWTAccessTokenTTL,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	insightsHandler := handlers.NewInsightsHandler(
		deps.PacketRepo,
		deps.Config.Analytics.Thresholds(),
		deps.Config.Analytics.PacketWindow,
	)
	if deps.SnapshotCache != nil {
		insightsHandler = insightsHandler.WithSnapshotCache(deps.SnapshotCache)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthHandler)

		// Protected insights routes
		devices := v1.Group("/devices")
		devices.Use(authMiddleware.Required())
		{
			devices.GET("/:imei/trips", insightsHandler.GetTrips)
			devices.GET("/:imei/summary", insightsHandler.GetSummary)
			devices.GET("/:imei/alerts", insightsHandler.GetAlerts)
			devices.GET("/:imei/status", insightsHandler.GetStatus)
		}
	}

	return router
}
