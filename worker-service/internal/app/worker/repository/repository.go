package repository

import (
	"context"
	"errors"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrJobNotFound = errors.New("dispatch job not found")
)

type DispatchJobRepository interface {
	Upsert(ctx context.Context, job *entity.DispatchJob) error
	GetDue(ctx context.Context, now time.Time) ([]entity.DispatchJob, error)
	GetByReviewID(ctx context.Context, reviewID string) (*entity.DispatchJob, error)
	MarkSent(ctx context.Context, reviewID string) error
	CancelPending(ctx context.Context, reviewID string) error
	RecordFailure(ctx context.Context, reviewID string, attempts int, lastError string, final bool) error
}
