package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"realestate-listing-api/internal/domains/listing/handler"
	"realestate-listing-api/internal/shared/middleware"
	"realestate-listing-api/pkg/container"
	"realestate-listing-api/pkg/logger"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.ErrorLogging(c.Config.App.Name),
		middleware.UnitOfWork(),
	)

	router.GET("/health", healthCheckHandler(c))

	handler.RegisterRoutes(router, c.ListingHandler)

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"driver":    appCtx.Config.Database.Driver,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.HealthCheck(ctx); err != nil {
			logger.Error("Health check failed", err)
			health["status"] = "unavailable"
			health["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}

		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		c.JSON(http.StatusOK, health)
	}
}
