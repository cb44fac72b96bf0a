package repository

import (
	"context"
	"errors"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewProfileRepository создает новый репозиторий профиля ресторана
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Get получает профиль ресторана из PostgreSQL.
// В системе хранится единственный профиль.
func (r *profileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	var profile entity.Profile
	result := r.db.WithContext(ctx).First(&profile)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, result.Error
	}

	return &profile, nil
}

// Create создает профиль ресторана в PostgreSQL
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).Create(profile)
	return result.Error
}

// Update обновляет профиль ресторана в PostgreSQL
func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).Model(profile).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"restaurant_name":    profile.RestaurantName,
			"contact_email":      profile.ContactEmail,
			"auto_reply_enabled": profile.AutoReplyEnabled,
			"subscription_tier":  profile.SubscriptionTier,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
