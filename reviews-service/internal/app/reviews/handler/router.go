package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"
)

func SetupRoutes(
	reviewHandler *ReviewHandler,
	analyticsHandler *AnalyticsHandler,
	authMiddleware *AuthMiddleware,
	serviceAuthMiddleware *ServiceAuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("reviews-service"))

	// CORS для SPA дашборда
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviews-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.GET("/fetch", reviewHandler.ListReviews)
		reviews.POST("", reviewHandler.IngestReview)
		reviews.GET("/:review_id", reviewHandler.GetReview)
		reviews.GET("/:review_id/history", reviewHandler.GetHistory)
		reviews.POST("/:review_id/generate-reply", reviewHandler.GenerateReply)
		reviews.POST("/:review_id/draft", reviewHandler.SaveDraft)
		reviews.POST("/:review_id/publish", reviewHandler.PublishReply)
		reviews.POST("/:review_id/schedule", reviewHandler.ScheduleReply)
	}

	analytics := router.Group("/analytics")
	analytics.Use(authMiddleware.Authenticate())
	{
		analytics.GET("/summary", analyticsHandler.GetSummary)
	}

	// Внутренние endpoints для Worker Service
	internal := router.Group("/internal")
	internal.Use(serviceAuthMiddleware.Authenticate())
	{
		internal.POST("/reviews/:review_id/complete-scheduled", reviewHandler.CompleteScheduled)
	}

	return router
}
