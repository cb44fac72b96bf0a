package service

import (
	"context"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"
)

// Clock абстрагирует системное время, чтобы отсечка due-заданий
// была детерминированной в тестах
type Clock interface {
	Now() time.Time
}

// SystemClock настоящие часы для production
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ReviewsClient абстрагирует HTTP клиент Reviews Service
type ReviewsClient interface {
	CompleteScheduled(ctx context.Context, reviewID string) error
}

// AlertMailer абстрагирует отправку e-mail уведомлений владельцу
type AlertMailer interface {
	SendNegativeReviewAlert(event *entity.ReviewEvent) error
}

// DispatchServiceInterface определяет интерфейс сервиса отложенных публикаций
type DispatchServiceInterface interface {
	ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error
	DispatchDue(ctx context.Context) error
}
