package handler

import (
	"context"
	"errors"
	"net/http"

	"bistrobot/reviews-service/internal/app/reviews/entity"
	"bistrobot/reviews-service/internal/app/reviews/service"
	"bistrobot/reviews-service/internal/app/reviews/workflow"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	IngestReview(ctx context.Context, req *entity.IngestReviewRequest) (*entity.Review, error)
	ListReviews(ctx context.Context) ([]entity.Review, error)
	GetReview(ctx context.Context, reviewID string) (*entity.Review, error)
	GetHistory(ctx context.Context, reviewID string) ([]entity.HistoryEntry, error)
	GenerateReply(ctx context.Context, reviewID string) (*entity.Review, error)
	SaveDraft(ctx context.Context, reviewID string, text string) (*entity.Review, error)
	PublishReply(ctx context.Context, reviewID string, text string) (*entity.Review, error)
	ScheduleReply(ctx context.Context, reviewID string, text string, scheduledAt string) (*entity.Review, error)
	CompleteScheduled(ctx context.Context, reviewID string) (*entity.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) IngestReview(c *gin.Context) {
	var req entity.IngestReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.IngestReview(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	response := entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID := c.Param("review_id")

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) GetHistory(c *gin.Context) {
	reviewID := c.Param("review_id")

	history, err := h.reviewService.GetHistory(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get review history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ReviewHandler) GenerateReply(c *gin.Context) {
	reviewID := c.Param("review_id")

	review, err := h.reviewService.GenerateReply(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, service.ErrGuidelinesUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Brand guidelines unavailable, try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) SaveDraft(c *gin.Context) {
	reviewID := c.Param("review_id")

	var req entity.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, err := h.reviewService.SaveDraft(c.Request.Context(), reviewID, req.Reply)
	if err != nil {
		h.respondTransitionError(c, err, "Failed to save draft")
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) PublishReply(c *gin.Context) {
	reviewID := c.Param("review_id")

	var req entity.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, err := h.reviewService.PublishReply(c.Request.Context(), reviewID, req.Reply)
	if err != nil {
		h.respondTransitionError(c, err, "Failed to publish reply")
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ScheduleReply(c *gin.Context) {
	reviewID := c.Param("review_id")

	var req entity.ScheduleReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.ScheduleReply(c.Request.Context(), reviewID, req.Reply, req.ScheduledAt)
	if err != nil {
		h.respondTransitionError(c, err, "Failed to schedule reply")
		return
	}

	c.JSON(http.StatusOK, review)
}

// CompleteScheduled внутренний endpoint для Worker Service
func (h *ReviewHandler) CompleteScheduled(c *gin.Context) {
	reviewID := c.Param("review_id")

	review, err := h.reviewService.CompleteScheduled(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if errors.Is(err, workflow.ErrNotScheduled) {
			c.JSON(http.StatusConflict, gin.H{"error": "Review has no scheduled reply"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete scheduled reply"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) respondTransitionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
	case errors.Is(err, workflow.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply content cannot be empty"})
	case errors.Is(err, workflow.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scheduled time must be in the future"})
	case errors.Is(err, service.ErrInvalidScheduledFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scheduled time must be a valid RFC3339 timestamp"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
