package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"
	"bistrobot/settings-service/internal/app/settings/entity"
	"bistrobot/settings-service/internal/app/settings/repository"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrTemplateNotFound        = errors.New("template not found")
	ErrTemplateAlreadyExists   = errors.New("template with this name already exists")
	ErrTemplateLimitReached    = errors.New("template limit reached")
	ErrIntegrationNotFound     = errors.New("integration not found")
	ErrIntegrationLimitReached = errors.New("integration limit reached")
	ErrPlanUnavailable         = errors.New("subscription plan unavailable")
)

// SettingsService обрабатывает бизнес-логику настроек ресторана.
// Координирует репозитории PostgreSQL, Redis кеш и Kafka producer
type SettingsService struct {
	guidelinesRepo  repository.GuidelinesRepository
	templateRepo    repository.TemplateRepository
	integrationRepo repository.IntegrationRepository
	cache           GuidelinesCache
	kafkaProducer   MessagePublisher
	plans           PlanProvider
}

// NewSettingsService создает новый сервис настроек с внедрением зависимостей
func NewSettingsService(
	guidelinesRepo repository.GuidelinesRepository,
	templateRepo repository.TemplateRepository,
	integrationRepo repository.IntegrationRepository,
	cache GuidelinesCache,
	kafkaProducer MessagePublisher,
	plans PlanProvider,
) *SettingsService {
	return &SettingsService{
		guidelinesRepo:  guidelinesRepo,
		templateRepo:    templateRepo,
		integrationRepo: integrationRepo,
		cache:           cache,
		kafkaProducer:   kafkaProducer,
		plans:           plans,
	}
}

// === BRAND GUIDELINES ===

// GetGuidelines получает настройки бренда с кешированием в Redis.
// Этот метод на горячем пути: Reviews Service зовет его при каждой генерации черновика
func (s *SettingsService) GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error) {
	cached, err := s.cache.GetGuidelines(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read guidelines cache")
	}
	if cached != nil {
		metrics.RecordCacheHit("settings-service", "settings:guidelines")
		return cached, nil
	}
	metrics.RecordCacheMiss("settings-service", "settings:guidelines")

	guidelines, err := s.guidelinesRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guidelines: %w", err)
	}

	if err := s.cache.SetGuidelines(ctx, guidelines); err != nil {
		logger.Warn().Err(err).Msg("failed to cache guidelines")
	}

	return guidelines, nil
}

// UpdateGuidelines сохраняет настройки бренда и инвалидирует кеш
func (s *SettingsService) UpdateGuidelines(ctx context.Context, req *entity.UpdateGuidelinesRequest) (*entity.BrandGuidelines, error) {
	guidelines := &entity.BrandGuidelines{
		ContactInfo:    req.ContactInfo,
		WordsToAvoid:   normalizeWords(req.WordsToAvoid),
		WordsToInclude: normalizeWords(req.WordsToInclude),
	}

	if err := s.guidelinesRepo.Upsert(ctx, guidelines); err != nil {
		return nil, fmt.Errorf("failed to update guidelines: %w", err)
	}

	if err := s.cache.InvalidateGuidelines(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate guidelines cache")
	}

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventGuidelinesUpdated,
		Timestamp: time.Now(),
	})

	return guidelines, nil
}

// === REPLY TEMPLATES ===

// CreateTemplate создает шаблон ответа с проверкой лимита тарифного плана
func (s *SettingsService) CreateTemplate(ctx context.Context, req *entity.CreateTemplateRequest) (*entity.ReplyTemplate, error) {
	if err := s.checkTemplateLimit(ctx); err != nil {
		return nil, err
	}

	template := &entity.ReplyTemplate{
		ID:        uuid.New(),
		Name:      req.Name,
		Content:   req.Content,
		Sentiment: req.Sentiment,
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		if errors.Is(err, repository.ErrTemplateAlreadyExists) {
			return nil, ErrTemplateAlreadyExists
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	metrics.TemplatesByAction.WithLabelValues("created").Inc()

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventTemplateCreated,
		EntityID:  template.ID.String(),
		Timestamp: time.Now(),
	})

	return template, nil
}

// GetTemplate получает шаблон по ID
func (s *SettingsService) GetTemplate(ctx context.Context, id uuid.UUID) (*entity.ReplyTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return template, nil
}

// GetAllTemplates получает все шаблоны ответов
func (s *SettingsService) GetAllTemplates(ctx context.Context) ([]entity.ReplyTemplate, error) {
	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}

	return templates, nil
}

// UpdateTemplate обновляет существующий шаблон
func (s *SettingsService) UpdateTemplate(ctx context.Context, id uuid.UUID, req *entity.UpdateTemplateRequest) (*entity.ReplyTemplate, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		template.Name = req.Name
	}
	if req.Content != "" {
		template.Content = req.Content
	}
	if req.Sentiment != "" {
		template.Sentiment = req.Sentiment
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		if errors.Is(err, repository.ErrTemplateAlreadyExists) {
			return nil, ErrTemplateAlreadyExists
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	metrics.TemplatesByAction.WithLabelValues("updated").Inc()

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventTemplateUpdated,
		EntityID:  template.ID.String(),
		Timestamp: time.Now(),
	})

	return template, nil
}

// DeleteTemplate удаляет шаблон
func (s *SettingsService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}

	metrics.TemplatesByAction.WithLabelValues("deleted").Inc()

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventTemplateDeleted,
		EntityID:  id.String(),
		Timestamp: time.Now(),
	})

	return nil
}

// === INTEGRATIONS ===

// GetAllIntegrations получает все интеграции с платформами отзывов
func (s *SettingsService) GetAllIntegrations(ctx context.Context) ([]entity.Integration, error) {
	integrations, err := s.integrationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get integrations: %w", err)
	}

	return integrations, nil
}

// ConnectIntegration подключает платформу с проверкой лимита плана.
// Повторное подключение уже подключенной платформы не тратит лимит
func (s *SettingsService) ConnectIntegration(ctx context.Context, platform string, req *entity.ConnectIntegrationRequest) (*entity.Integration, error) {
	existing, err := s.integrationRepo.GetByPlatform(ctx, platform)
	if err != nil && !errors.Is(err, repository.ErrIntegrationNotFound) {
		return nil, fmt.Errorf("failed to check integration: %w", err)
	}

	if existing == nil || !existing.Connected {
		if err := s.checkIntegrationLimit(ctx); err != nil {
			return nil, err
		}
	}

	integration := &entity.Integration{
		ID:          uuid.New(),
		Platform:    platform,
		DisplayName: req.DisplayName,
	}
	if existing != nil {
		integration.ID = existing.ID
		if integration.DisplayName == "" {
			integration.DisplayName = existing.DisplayName
		}
	}
	if integration.DisplayName == "" {
		integration.DisplayName = platform
	}

	if err := s.integrationRepo.Connect(ctx, integration); err != nil {
		return nil, fmt.Errorf("failed to connect integration: %w", err)
	}

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventIntegrationConnected,
		EntityID:  integration.ID.String(),
		Platform:  platform,
		Timestamp: time.Now(),
	})

	return integration, nil
}

// DisconnectIntegration отключает платформу
func (s *SettingsService) DisconnectIntegration(ctx context.Context, platform string) error {
	if err := s.integrationRepo.Disconnect(ctx, platform); err != nil {
		if errors.Is(err, repository.ErrIntegrationNotFound) {
			return ErrIntegrationNotFound
		}
		return fmt.Errorf("failed to disconnect integration: %w", err)
	}

	s.publishEvent(ctx, entity.SettingsEvent{
		EventType: entity.EventIntegrationDisconnected,
		Platform:  platform,
		Timestamp: time.Now(),
	})

	return nil
}

func (s *SettingsService) checkTemplateLimit(ctx context.Context) error {
	limits, err := s.plans.GetPlanLimits(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlanUnavailable, err)
	}

	// Отрицательный лимит означает безлимитный план
	if limits.MaxTemplates < 0 {
		return nil
	}

	count, err := s.templateRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}

	if count >= limits.MaxTemplates {
		return ErrTemplateLimitReached
	}

	return nil
}

func (s *SettingsService) checkIntegrationLimit(ctx context.Context) error {
	limits, err := s.plans.GetPlanLimits(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlanUnavailable, err)
	}

	if limits.MaxIntegrations < 0 {
		return nil
	}

	count, err := s.integrationRepo.CountConnected(ctx)
	if err != nil {
		return fmt.Errorf("failed to count integrations: %w", err)
	}

	if count >= limits.MaxIntegrations {
		return ErrIntegrationLimitReached
	}

	return nil
}

// publishEvent отправляет событие в Kafka.
// Ошибки Kafka не критичны: настройки уже сохранены в PostgreSQL
func (s *SettingsService) publishEvent(ctx context.Context, event entity.SettingsEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal settings event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.EventType, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to publish settings event")
	}
}

// normalizeWords убирает пустые строки из списков слов
func normalizeWords(words []string) []string {
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		if word != "" {
			normalized = append(normalized, word)
		}
	}
	return normalized
}
