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
	settingsHandler *SettingsHandler,
	authMiddleware *AuthMiddleware,
	serviceAuthMiddleware *ServiceAuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("settings-service"))

	// CORS для SPA дашборда
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "settings-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	settings := router.Group("/settings")
	settings.Use(authMiddleware.Authenticate())
	{
		settings.GET("/guidelines", settingsHandler.GetGuidelines)
		settings.PUT("/guidelines", settingsHandler.UpdateGuidelines)
	}

	templates := router.Group("/templates")
	templates.Use(authMiddleware.Authenticate())
	{
		templates.GET("", settingsHandler.GetAllTemplates)
		templates.POST("", settingsHandler.CreateTemplate)
		templates.GET("/:template_id", settingsHandler.GetTemplate)
		templates.PUT("/:template_id", settingsHandler.UpdateTemplate)
		templates.DELETE("/:template_id", settingsHandler.DeleteTemplate)
	}

	integrations := router.Group("/integrations")
	integrations.Use(authMiddleware.Authenticate())
	{
		integrations.GET("", settingsHandler.GetAllIntegrations)
		integrations.POST("/:platform/connect", settingsHandler.ConnectIntegration)
		integrations.POST("/:platform/disconnect", settingsHandler.DisconnectIntegration)
	}

	// Внутренний endpoint для Reviews Service: настройки бренда для генерации черновиков
	internal := router.Group("/internal")
	internal.Use(serviceAuthMiddleware.Authenticate())
	{
		internal.GET("/settings/guidelines", settingsHandler.GetGuidelines)
	}

	return router
}
