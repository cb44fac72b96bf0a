package handler

import (
	"context"
	"net/http"

	"bistrobot/reviews-service/internal/app/reviews/entity"

	"github.com/gin-gonic/gin"
)

type AnalyticsServiceInterface interface {
	GetSummary(ctx context.Context) (*entity.AnalyticsSummary, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsService AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
