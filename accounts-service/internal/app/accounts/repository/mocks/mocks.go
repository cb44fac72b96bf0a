package mocks

import (
	"context"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository - мок репозитория профиля для unit-тестов
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockAPIKeyRepository - мок репозитория API-ключей для unit-тестов
type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) GetAll(ctx context.Context) ([]entity.APIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*entity.APIKey, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanCache - мок Redis-кэша лимитов тарифа
type MockPlanCache struct {
	mock.Mock
}

func (m *MockPlanCache) GetPlan(ctx context.Context) (*entity.PlanLimits, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlanLimits), args.Error(1)
}

func (m *MockPlanCache) SetPlan(ctx context.Context, limits *entity.PlanLimits) error {
	args := m.Called(ctx, limits)
	return args.Error(0)
}

func (m *MockPlanCache) InvalidatePlan(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
