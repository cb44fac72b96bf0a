package service

import (
	"context"
	"errors"
	"fmt"

	"bistrobot/accounts-service/internal/app/accounts/entity"
	"bistrobot/accounts-service/internal/app/accounts/repository"
	"bistrobot/accounts-service/internal/app/accounts/util"
	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrAPIKeyNotFound    = errors.New("api key not found")
	ErrInvalidAPIKey     = errors.New("invalid api key")
	ErrUnknownTier       = errors.New("unknown subscription tier")
	ErrAlreadyTopTier    = errors.New("subscription is already on the highest tier")
	ErrAlreadyBottomTier = errors.New("subscription is already on the lowest tier")
)

const (
	defaultRestaurantName = "My Restaurant"
	defaultContactEmail   = "owner@example.com"
)

// AccountsService обрабатывает бизнес-логику профиля ресторана,
// подписки и API-ключей коннекторов платформ
type AccountsService struct {
	profileRepo repository.ProfileRepository
	apiKeyRepo  repository.APIKeyRepository
	planCache   PlanCache
}

// NewAccountsService создает новый сервис аккаунтов с внедрением зависимостей
func NewAccountsService(
	profileRepo repository.ProfileRepository,
	apiKeyRepo repository.APIKeyRepository,
	planCache PlanCache,
) *AccountsService {
	return &AccountsService{
		profileRepo: profileRepo,
		apiKeyRepo:  apiKeyRepo,
		planCache:   planCache,
	}
}

// GetProfile возвращает профиль ресторана.
// Если профиль еще не создан, создается профиль по умолчанию на тарифе free
func (s *AccountsService) GetProfile(ctx context.Context) (*entity.Profile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile = &entity.Profile{
		ID:               uuid.New(),
		RestaurantName:   defaultRestaurantName,
		ContactEmail:     defaultContactEmail,
		AutoReplyEnabled: false,
		SubscriptionTier: entity.TierFree,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create default profile: %w", err)
	}

	logger.Info().Str("profile_id", profile.ID.String()).Msg("Default profile created")

	return profile, nil
}

// UpdateProfile обновляет поля профиля, переданные в запросе
func (s *AccountsService) UpdateProfile(ctx context.Context, req *entity.UpdateProfileRequest) (*entity.Profile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if req.RestaurantName != "" {
		profile.RestaurantName = req.RestaurantName
	}
	if req.ContactEmail != "" {
		profile.ContactEmail = req.ContactEmail
	}
	if req.AutoReplyEnabled != nil {
		profile.AutoReplyEnabled = *req.AutoReplyEnabled
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	logger.Info().Str("profile_id", profile.ID.String()).Msg("Profile updated")

	return profile, nil
}

// GetSubscription возвращает текущий тариф и его лимиты
func (s *AccountsService) GetSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	limits, ok := entity.PlanForTier(profile.SubscriptionTier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTier, profile.SubscriptionTier)
	}

	return &entity.SubscriptionResponse{Tier: profile.SubscriptionTier, Limits: limits}, nil
}

// UpgradeSubscription переводит подписку на следующий тариф: free -> pro -> enterprise
func (s *AccountsService) UpgradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	return s.changeTier(ctx, entity.NextTier, ErrAlreadyTopTier)
}

// DowngradeSubscription переводит подписку на предыдущий тариф: enterprise -> pro -> free
func (s *AccountsService) DowngradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	return s.changeTier(ctx, entity.PrevTier, ErrAlreadyBottomTier)
}

func (s *AccountsService) changeTier(
	ctx context.Context,
	step func(entity.SubscriptionTier) (entity.SubscriptionTier, bool),
	boundaryErr error,
) (*entity.SubscriptionResponse, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	next, ok := step(profile.SubscriptionTier)
	if !ok {
		return nil, boundaryErr
	}

	profile.SubscriptionTier = next
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to change subscription tier: %w", err)
	}

	// Лимиты изменились, кеш плана устарел
	if err := s.planCache.InvalidatePlan(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate plan cache")
	}

	metrics.SubscriptionChanges.WithLabelValues(string(next)).Inc()
	logger.Info().Str("tier", string(next)).Msg("Subscription tier changed")

	limits, _ := entity.PlanForTier(next)
	return &entity.SubscriptionResponse{Tier: next, Limits: limits}, nil
}

// GetPlan возвращает лимиты произвольного тарифа по имени
func (s *AccountsService) GetPlan(tier string) (*entity.PlanLimits, error) {
	limits, ok := entity.PlanForTier(entity.SubscriptionTier(tier))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}
	return &limits, nil
}

// GetCurrentPlanLimits возвращает лимиты текущего тарифа профиля.
// Вызывается Settings Service перед проверкой лимитов, поэтому кешируется в Redis
func (s *AccountsService) GetCurrentPlanLimits(ctx context.Context) (*entity.PlanLimits, error) {
	cached, err := s.planCache.GetPlan(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read plan cache")
	}
	if cached != nil {
		metrics.RecordCacheHit("accounts-service", "accounts:plan")
		return cached, nil
	}
	metrics.RecordCacheMiss("accounts-service", "accounts:plan")

	sub, err := s.GetSubscription(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.planCache.SetPlan(ctx, &sub.Limits); err != nil {
		logger.Warn().Err(err).Msg("failed to cache plan limits")
	}

	return &sub.Limits, nil
}

// CreateAPIKey создает новый API-ключ.
// Секрет возвращается только из этого метода и больше нигде не хранится открыто
func (s *AccountsService) CreateAPIKey(ctx context.Context, req *entity.CreateAPIKeyRequest) (*entity.CreatedAPIKeyResponse, error) {
	secret, prefix := util.GenerateAPIKey()

	hash, err := util.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash api key secret: %w", err)
	}

	key := &entity.APIKey{
		ID:         uuid.New(),
		Name:       req.Name,
		Prefix:     prefix,
		SecretHash: hash,
	}

	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}

	logger.Info().Str("key_id", key.ID.String()).Str("prefix", prefix).Msg("API key created")

	return &entity.CreatedAPIKeyResponse{APIKey: *key, Secret: secret}, nil
}

// ListAPIKeys возвращает все ключи без секретов
func (s *AccountsService) ListAPIKeys(ctx context.Context) ([]entity.APIKey, error) {
	keys, err := s.apiKeyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	return keys, nil
}

// DeleteAPIKey отзывает ключ навсегда
func (s *AccountsService) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	if err := s.apiKeyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return ErrAPIKeyNotFound
		}
		return fmt.Errorf("failed to delete api key: %w", err)
	}

	logger.Info().Str("key_id", id.String()).Msg("API key revoked")

	return nil
}

// VerifyAPIKey проверяет секрет ключа.
// Ключ ищется по открытому префиксу, секрет сверяется с bcrypt хэшем
func (s *AccountsService) VerifyAPIKey(ctx context.Context, secret string) (*entity.APIKey, error) {
	key, err := s.apiKeyRepo.GetByPrefix(ctx, util.KeyPrefix(secret))
	if err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	if !util.CheckSecret(secret, key.SecretHash) {
		return nil, ErrInvalidAPIKey
	}

	if err := s.apiKeyRepo.TouchLastUsed(ctx, key.ID); err != nil {
		logger.Warn().Err(err).Str("key_id", key.ID.String()).Msg("failed to update api key last_used_at")
	}

	return key, nil
}
