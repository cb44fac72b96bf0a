package repository

import (
	"context"
	"errors"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrProfileNotFound = errors.New("profile not found")
	ErrAPIKeyNotFound  = errors.New("api key not found")
)

type ProfileRepository interface {
	Get(ctx context.Context) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	GetAll(ctx context.Context) ([]entity.APIKey, error)
	GetByPrefix(ctx context.Context, prefix string) (*entity.APIKey, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
