package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bistrobot/accounts-service/internal/app/accounts/entity"
	"bistrobot/accounts-service/internal/app/accounts/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AccountsServiceInterface interface {
	GetProfile(ctx context.Context) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, req *entity.UpdateProfileRequest) (*entity.Profile, error)
	GetSubscription(ctx context.Context) (*entity.SubscriptionResponse, error)
	UpgradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error)
	DowngradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error)
	GetPlan(tier string) (*entity.PlanLimits, error)
	GetCurrentPlanLimits(ctx context.Context) (*entity.PlanLimits, error)
	CreateAPIKey(ctx context.Context, req *entity.CreateAPIKeyRequest) (*entity.CreatedAPIKeyResponse, error)
	ListAPIKeys(ctx context.Context) ([]entity.APIKey, error)
	DeleteAPIKey(ctx context.Context, id uuid.UUID) error
	VerifyAPIKey(ctx context.Context, secret string) (*entity.APIKey, error)
}

// AccountsHandler обрабатывает HTTP запросы аккаунта
type AccountsHandler struct {
	accountsService AccountsServiceInterface
	validator       *validator.Validate
}

// NewAccountsHandler создает новый обработчик аккаунта
func NewAccountsHandler(accountsService AccountsServiceInterface) *AccountsHandler {
	return &AccountsHandler{
		accountsService: accountsService,
		validator:       validator.New(),
	}
}

// === PROFILE ===

// GetProfile обрабатывает GET /profile
func (h *AccountsHandler) GetProfile(c *gin.Context) {
	profile, err := h.accountsService.GetProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile обрабатывает PATCH /profile
func (h *AccountsHandler) UpdateProfile(c *gin.Context) {
	var req entity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	profile, err := h.accountsService.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// === SUBSCRIPTION ===

// GetSubscription обрабатывает GET /subscription
func (h *AccountsHandler) GetSubscription(c *gin.Context) {
	sub, err := h.accountsService.GetSubscription(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// UpgradeSubscription обрабатывает POST /subscription/upgrade
func (h *AccountsHandler) UpgradeSubscription(c *gin.Context) {
	sub, err := h.accountsService.UpgradeSubscription(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyTopTier) {
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is already on the highest tier"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// DowngradeSubscription обрабатывает POST /subscription/downgrade
func (h *AccountsHandler) DowngradeSubscription(c *gin.Context) {
	sub, err := h.accountsService.DowngradeSubscription(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyBottomTier) {
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is already on the lowest tier"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to downgrade subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetPlan обрабатывает GET /plans/:tier
func (h *AccountsHandler) GetPlan(c *gin.Context) {
	limits, err := h.accountsService.GetPlan(c.Param("tier"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown subscription tier"})
		return
	}

	c.JSON(http.StatusOK, limits)
}

// GetCurrentPlan обрабатывает GET /internal/plan.
// Вызывается Settings Service по сервисному токену
func (h *AccountsHandler) GetCurrentPlan(c *gin.Context) {
	limits, err := h.accountsService.GetCurrentPlanLimits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get current plan limits"})
		return
	}

	c.JSON(http.StatusOK, limits)
}

// === API KEYS ===

// CreateAPIKey обрабатывает POST /api-keys
func (h *AccountsHandler) CreateAPIKey(c *gin.Context) {
	var req entity.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	key, err := h.accountsService.CreateAPIKey(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}

	c.JSON(http.StatusCreated, key)
}

// ListAPIKeys обрабатывает GET /api-keys
func (h *AccountsHandler) ListAPIKeys(c *gin.Context) {
	keys, err := h.accountsService.ListAPIKeys(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list API keys"})
		return
	}

	c.JSON(http.StatusOK, entity.APIKeyListResponse{Keys: keys, Total: len(keys)})
}

// DeleteAPIKey обрабатывает DELETE /api-keys/:key_id
func (h *AccountsHandler) DeleteAPIKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("key_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	if err := h.accountsService.DeleteAPIKey(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAPIKeyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}

// VerifyAPIKey обрабатывает POST /api-keys/verify.
// Используется коннекторами платформ для проверки секрета
func (h *AccountsHandler) VerifyAPIKey(c *gin.Context) {
	var req entity.VerifyAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	key, err := h.accountsService.VerifyAPIKey(c.Request.Context(), req.Secret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAPIKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify API key"})
		return
	}

	c.JSON(http.StatusOK, key)
}

// HealthCheck обрабатывает GET /health
func (h *AccountsHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "accounts-service"})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				return fmt.Sprintf("Field '%s' is required", fieldError.Field())
			case "email":
				return fmt.Sprintf("Field '%s' must be a valid email", fieldError.Field())
			case "min":
				return fmt.Sprintf("Field '%s' is too short", fieldError.Field())
			case "max":
				return fmt.Sprintf("Field '%s' is too long", fieldError.Field())
			}
		}
	}
	return "Validation failed"
}
