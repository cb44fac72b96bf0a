package mocks

import (
	"context"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockDispatchJobRepository - мок репозитория заданий для unit-тестов
type MockDispatchJobRepository struct {
	mock.Mock
}

func (m *MockDispatchJobRepository) Upsert(ctx context.Context, job *entity.DispatchJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockDispatchJobRepository) GetDue(ctx context.Context, now time.Time) ([]entity.DispatchJob, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DispatchJob), args.Error(1)
}

func (m *MockDispatchJobRepository) GetByReviewID(ctx context.Context, reviewID string) (*entity.DispatchJob, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchJob), args.Error(1)
}

func (m *MockDispatchJobRepository) MarkSent(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockDispatchJobRepository) CancelPending(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockDispatchJobRepository) RecordFailure(ctx context.Context, reviewID string, attempts int, lastError string, final bool) error {
	args := m.Called(ctx, reviewID, attempts, lastError, final)
	return args.Error(0)
}

// MockReviewsClient - мок клиента Reviews Service
type MockReviewsClient struct {
	mock.Mock
}

func (m *MockReviewsClient) CompleteScheduled(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

// MockAlertMailer - мок отправителя e-mail уведомлений
type MockAlertMailer struct {
	mock.Mock
}

func (m *MockAlertMailer) SendNegativeReviewAlert(event *entity.ReviewEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
