package repository

import (
	"context"
	"errors"
	"time"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type apiKeyRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewAPIKeyRepository создает новый репозиторий API-ключей
func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

// Create создает новый API-ключ в PostgreSQL
func (r *apiKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	result := r.db.WithContext(ctx).Create(key)
	return result.Error
}

// GetAll получает все API-ключи, отсортированные по дате создания
func (r *apiKeyRepository) GetAll(ctx context.Context) ([]entity.APIKey, error) {
	var keys []entity.APIKey
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&keys)

	if result.Error != nil {
		return nil, result.Error
	}

	return keys, nil
}

// GetByPrefix получает API-ключ по публичному префиксу
func (r *apiKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*entity.APIKey, error) {
	var key entity.APIKey
	result := r.db.WithContext(ctx).First(&key, "prefix = ?", prefix)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, result.Error
	}

	return &key, nil
}

// Delete удаляет API-ключ из PostgreSQL
func (r *apiKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.APIKey{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}

// TouchLastUsed обновляет время последнего использования ключа
func (r *apiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now())

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}
