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
	accountsHandler *AccountsHandler,
	authMiddleware *AuthMiddleware,
	serviceAuthMiddleware *ServiceAuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("accounts-service"))

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
			"service": "accounts-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	profile := router.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	{
		profile.GET("", accountsHandler.GetProfile)
		profile.PATCH("", accountsHandler.UpdateProfile)
	}

	subscription := router.Group("/subscription")
	subscription.Use(authMiddleware.Authenticate())
	{
		subscription.GET("", accountsHandler.GetSubscription)
		subscription.POST("/upgrade", accountsHandler.UpgradeSubscription)
		subscription.POST("/downgrade", accountsHandler.DowngradeSubscription)
	}

	plans := router.Group("/plans")
	plans.Use(authMiddleware.Authenticate())
	{
		plans.GET("/:tier", accountsHandler.GetPlan)
	}

	apiKeys := router.Group("/api-keys")
	apiKeys.Use(authMiddleware.Authenticate())
	{
		apiKeys.POST("", accountsHandler.CreateAPIKey)
		apiKeys.GET("", accountsHandler.ListAPIKeys)
		apiKeys.DELETE("/:key_id", accountsHandler.DeleteAPIKey)
		apiKeys.POST("/verify", accountsHandler.VerifyAPIKey)
	}

	// Внутренний endpoint для Settings Service: лимиты текущего тарифа
	internal := router.Group("/internal")
	internal.Use(serviceAuthMiddleware.Authenticate())
	{
		internal.GET("/plan", accountsHandler.GetCurrentPlan)
	}

	return router
}
