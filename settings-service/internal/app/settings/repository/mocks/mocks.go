package mocks

import (
	"context"

	"bistrobot/settings-service/internal/app/settings/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGuidelinesRepository мок для GuidelinesRepository
type MockGuidelinesRepository struct {
	mock.Mock
}

func (m *MockGuidelinesRepository) Get(ctx context.Context) (*entity.BrandGuidelines, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BrandGuidelines), args.Error(1)
}

func (m *MockGuidelinesRepository) Upsert(ctx context.Context, guidelines *entity.BrandGuidelines) error {
	args := m.Called(ctx, guidelines)
	return args.Error(0)
}

// MockTemplateRepository мок для TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *entity.ReplyTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReplyTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReplyTemplate), args.Error(1)
}

func (m *MockTemplateRepository) GetAll(ctx context.Context) ([]entity.ReplyTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ReplyTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *entity.ReplyTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockIntegrationRepository мок для IntegrationRepository
type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) GetAll(ctx context.Context) ([]entity.Integration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) GetByPlatform(ctx context.Context, platform string) (*entity.Integration, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) Connect(ctx context.Context, integration *entity.Integration) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockIntegrationRepository) Disconnect(ctx context.Context, platform string) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockIntegrationRepository) CountConnected(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockGuidelinesCache мок для Redis кеша настроек
type MockGuidelinesCache struct {
	mock.Mock
}

func (m *MockGuidelinesCache) GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BrandGuidelines), args.Error(1)
}

func (m *MockGuidelinesCache) SetGuidelines(ctx context.Context, guidelines *entity.BrandGuidelines) error {
	args := m.Called(ctx, guidelines)
	return args.Error(0)
}

func (m *MockGuidelinesCache) InvalidateGuidelines(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka producer
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPlanProvider мок для клиента Accounts Service
type MockPlanProvider struct {
	mock.Mock
}

func (m *MockPlanProvider) GetPlanLimits(ctx context.Context) (*entity.PlanLimits, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlanLimits), args.Error(1)
}
