package entity

import (
	"time"

	"github.com/google/uuid"
)

// BrandGuidelines представляет настройки тона бренда для генерации ответов.
// Хранится одна строка на аккаунт, guidelinesRowID фиксирован
type BrandGuidelines struct {
	ContactInfo    string    `json:"contactInfo" db:"contact_info"`
	WordsToAvoid   []string  `json:"wordsToAvoid" db:"words_to_avoid"`
	WordsToInclude []string  `json:"wordsToInclude" db:"words_to_include"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ReplyTemplate представляет заготовку ответа для ручного использования
type ReplyTemplate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Content   string    `json:"content" db:"content"`
	Sentiment string    `json:"sentiment" db:"sentiment"` // Positive, Negative, Neutral, All
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Integration представляет подключение к платформе отзывов
type Integration struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Platform    string     `json:"platform" db:"platform"`
	DisplayName string     `json:"display_name" db:"display_name"`
	Connected   bool       `json:"connected" db:"connected"`
	ConnectedAt *time.Time `json:"connected_at,omitempty" db:"connected_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// PlanLimits лимиты тарифного плана, получаются из Accounts Service.
// Отрицательное значение означает отсутствие лимита
type PlanLimits struct {
	Tier            string `json:"tier"`
	MaxTemplates    int    `json:"max_templates"`
	MaxIntegrations int    `json:"max_integrations"`
}

// Типы событий для топика settings_events
const (
	EventGuidelinesUpdated       = "GUIDELINES_UPDATED"
	EventTemplateCreated         = "TEMPLATE_CREATED"
	EventTemplateUpdated         = "TEMPLATE_UPDATED"
	EventTemplateDeleted         = "TEMPLATE_DELETED"
	EventIntegrationConnected    = "INTEGRATION_CONNECTED"
	EventIntegrationDisconnected = "INTEGRATION_DISCONNECTED"
)

// SettingsEvent представляет событие изменения настроек для Kafka
type SettingsEvent struct {
	EventType string    `json:"event_type"`
	EntityID  string    `json:"entity_id,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
