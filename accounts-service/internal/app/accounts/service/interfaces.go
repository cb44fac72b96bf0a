package service

import (
	"context"

	"bistrobot/accounts-service/internal/app/accounts/entity"
)

// PlanCache абстрагирует кеш лимитов текущего тарифа (Redis)
type PlanCache interface {
	GetPlan(ctx context.Context) (*entity.PlanLimits, error)
	SetPlan(ctx context.Context, limits *entity.PlanLimits) error
	InvalidatePlan(ctx context.Context) error
}
