package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier представляет тарифные планы
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// Profile представляет аккаунт ресторана.
// Дашборд обслуживает один ресторан, строка профиля одна
type Profile struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantName   string           `json:"restaurant_name" gorm:"type:varchar(200);not null"`
	ContactEmail     string           `json:"contact_email" gorm:"type:varchar(200);not null"`
	AutoReplyEnabled bool             `json:"auto_reply_enabled" gorm:"not null;default:false"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" gorm:"type:varchar(20);not null;default:'free'"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Profile) TableName() string {
	return "profiles"
}

// APIKey представляет ключ программного доступа для коннекторов платформ.
// Секрет хранится как bcrypt хэш, префикс нужен для поиска и отображения
type APIKey struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string     `json:"name" gorm:"type:varchar(100);not null"`
	Prefix     string     `json:"prefix" gorm:"type:varchar(16);not null;uniqueIndex"`
	SecretHash string     `json:"-" gorm:"type:varchar(100);not null"` // не возвращаем в JSON
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// TableName указывает имя таблицы для GORM
func (APIKey) TableName() string {
	return "api_keys"
}

// PlanLimits лимиты тарифного плана.
// Отрицательное значение означает отсутствие лимита
type PlanLimits struct {
	Tier            string `json:"tier"`
	MaxTemplates    int    `json:"max_templates"`
	MaxIntegrations int    `json:"max_integrations"`
}

// PlanForTier возвращает лимиты для тарифного плана
func PlanForTier(tier SubscriptionTier) (PlanLimits, bool) {
	switch tier {
	case TierFree:
		return PlanLimits{Tier: string(TierFree), MaxTemplates: 3, MaxIntegrations: 1}, true
	case TierPro:
		return PlanLimits{Tier: string(TierPro), MaxTemplates: 100, MaxIntegrations: 5}, true
	case TierEnterprise:
		return PlanLimits{Tier: string(TierEnterprise), MaxTemplates: -1, MaxIntegrations: -1}, true
	default:
		return PlanLimits{}, false
	}
}

// NextTier возвращает следующий тариф при апгрейде
func NextTier(tier SubscriptionTier) (SubscriptionTier, bool) {
	switch tier {
	case TierFree:
		return TierPro, true
	case TierPro:
		return TierEnterprise, true
	default:
		return "", false
	}
}

// PrevTier возвращает предыдущий тариф при даунгрейде
func PrevTier(tier SubscriptionTier) (SubscriptionTier, bool) {
	switch tier {
	case TierEnterprise:
		return TierPro, true
	case TierPro:
		return TierFree, true
	default:
		return "", false
	}
}
