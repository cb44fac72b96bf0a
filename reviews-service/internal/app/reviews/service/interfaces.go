package service

import (
	"context"

	"bistrobot/reviews-service/internal/app/reviews/entity"
)

// GuidelinesProvider абстрагирует источник настроек бренда
// (в проде - HTTP клиент Settings Service)
type GuidelinesProvider interface {
	GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error)
}

// SummaryCache абстрагирует кеш агрегированной аналитики (Redis)
type SummaryCache interface {
	GetSummary(ctx context.Context) (*entity.AnalyticsSummary, error)
	SetSummary(ctx context.Context, summary *entity.AnalyticsSummary) error
	InvalidateSummary(ctx context.Context) error
}
