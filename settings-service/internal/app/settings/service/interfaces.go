package service

import (
	"context"

	"bistrobot/settings-service/internal/app/settings/entity"
)

// PlanProvider возвращает лимиты текущего тарифного плана.
// Реализуется HTTP клиентом Accounts Service
type PlanProvider interface {
	GetPlanLimits(ctx context.Context) (*entity.PlanLimits, error)
}

// GuidelinesCache кеш настроек бренда в Redis
type GuidelinesCache interface {
	GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error)
	SetGuidelines(ctx context.Context, guidelines *entity.BrandGuidelines) error
	InvalidateGuidelines(ctx context.Context) error
}

// MessagePublisher интерфейс для отправки событий настроек в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
