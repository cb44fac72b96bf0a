package handler

import (
	"context"
	"errors"
	"net/http"

	"bistrobot/settings-service/internal/app/settings/entity"
	"bistrobot/settings-service/internal/app/settings/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type SettingsServiceInterface interface {
	GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error)
	UpdateGuidelines(ctx context.Context, req *entity.UpdateGuidelinesRequest) (*entity.BrandGuidelines, error)
	CreateTemplate(ctx context.Context, req *entity.CreateTemplateRequest) (*entity.ReplyTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*entity.ReplyTemplate, error)
	GetAllTemplates(ctx context.Context) ([]entity.ReplyTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req *entity.UpdateTemplateRequest) (*entity.ReplyTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	GetAllIntegrations(ctx context.Context) ([]entity.Integration, error)
	ConnectIntegration(ctx context.Context, platform string, req *entity.ConnectIntegrationRequest) (*entity.Integration, error)
	DisconnectIntegration(ctx context.Context, platform string) error
}

// SettingsHandler обрабатывает HTTP запросы настроек
type SettingsHandler struct {
	settingsService SettingsServiceInterface
	validator       *validator.Validate
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settingsService SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validator:       validator.New(),
	}
}

// === BRAND GUIDELINES ===

// GetGuidelines обрабатывает GET /settings/guidelines
func (h *SettingsHandler) GetGuidelines(c *gin.Context) {
	guidelines, err := h.settingsService.GetGuidelines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get guidelines"})
		return
	}

	c.JSON(http.StatusOK, guidelines)
}

// UpdateGuidelines обрабатывает PUT /settings/guidelines
func (h *SettingsHandler) UpdateGuidelines(c *gin.Context) {
	var req entity.UpdateGuidelinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	guidelines, err := h.settingsService.UpdateGuidelines(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guidelines"})
		return
	}

	c.JSON(http.StatusOK, guidelines)
}

// === REPLY TEMPLATES ===

// CreateTemplate обрабатывает POST /templates
func (h *SettingsHandler) CreateTemplate(c *gin.Context) {
	var req entity.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	template, err := h.settingsService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateLimitReached):
			c.JSON(http.StatusForbidden, gin.H{"error": "Template limit reached, upgrade your plan"})
		case errors.Is(err, service.ErrTemplateAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Template with this name already exists"})
		case errors.Is(err, service.ErrPlanUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Subscription plan unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		}
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplate обрабатывает GET /templates/:template_id
func (h *SettingsHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := h.settingsService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get template"})
		return
	}

	c.JSON(http.StatusOK, template)
}

// GetAllTemplates обрабатывает GET /templates
func (h *SettingsHandler) GetAllTemplates(c *gin.Context) {
	templates, err := h.settingsService.GetAllTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get templates"})
		return
	}

	c.JSON(http.StatusOK, entity.TemplateListResponse{
		Templates: templates,
		Total:     len(templates),
	})
}

// UpdateTemplate обрабатывает PUT /templates/:template_id
func (h *SettingsHandler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req entity.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	template, err := h.settingsService.UpdateTemplate(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		case errors.Is(err, service.ErrTemplateAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Template with this name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate обрабатывает DELETE /templates/:template_id
func (h *SettingsHandler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	if err := h.settingsService.DeleteTemplate(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Template deleted"})
}

// === INTEGRATIONS ===

// GetAllIntegrations обрабатывает GET /integrations
func (h *SettingsHandler) GetAllIntegrations(c *gin.Context) {
	integrations, err := h.settingsService.GetAllIntegrations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get integrations"})
		return
	}

	c.JSON(http.StatusOK, entity.IntegrationListResponse{
		Integrations: integrations,
		Total:        len(integrations),
	})
}

// ConnectIntegration обрабатывает POST /integrations/:platform/connect
func (h *SettingsHandler) ConnectIntegration(c *gin.Context) {
	platform := c.Param("platform")

	var req entity.ConnectIntegrationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	integration, err := h.settingsService.ConnectIntegration(c.Request.Context(), platform, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIntegrationLimitReached):
			c.JSON(http.StatusForbidden, gin.H{"error": "Integration limit reached, upgrade your plan"})
		case errors.Is(err, service.ErrPlanUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Subscription plan unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect integration"})
		}
		return
	}

	c.JSON(http.StatusOK, integration)
}

// DisconnectIntegration обрабатывает POST /integrations/:platform/disconnect
func (h *SettingsHandler) DisconnectIntegration(c *gin.Context) {
	platform := c.Param("platform")

	if err := h.settingsService.DisconnectIntegration(c.Request.Context(), platform); err != nil {
		if errors.Is(err, service.ErrIntegrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect integration"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Integration disconnected"})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
