package service

import (
	"context"
	"fmt"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"
	"bistrobot/worker-service/internal/app/worker/entity"
	"bistrobot/worker-service/internal/app/worker/repository"

	"github.com/google/uuid"
)

// DispatchService исполняет отложенные публикации ответов и
// рассылает уведомления о негативных отзывах
type DispatchService struct {
	jobRepo repository.DispatchJobRepository
	reviews ReviewsClient
	mailer  AlertMailer
	clock   Clock
}

// NewDispatchService создает новый сервис диспетчеризации
func NewDispatchService(
	jobRepo repository.DispatchJobRepository,
	reviews ReviewsClient,
	mailer AlertMailer,
	clock Clock,
) *DispatchService {
	return &DispatchService{
		jobRepo: jobRepo,
		reviews: reviews,
		mailer:  mailer,
		clock:   clock,
	}
}

// ProcessReviewEvent обрабатывает событие из топика review_events
func (s *DispatchService) ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error {
	switch event.EventType {
	case entity.EventTypeReplyScheduled:
		return s.handleReplyScheduled(ctx, event)
	case entity.EventTypeReplyPublished:
		return s.handleReplyPublished(ctx, event)
	case entity.EventTypeReviewIngested:
		return s.handleReviewIngested(event)
	default:
		logger.Warn().
			Str("event_type", event.EventType).
			Str("review_id", event.ReviewID).
			Msg("Unknown event type, skipping")
		return nil
	}
}

// handleReplyScheduled создает или обновляет задание на публикацию
func (s *DispatchService) handleReplyScheduled(ctx context.Context, event *entity.ReviewEvent) error {
	if event.ScheduledAt == nil {
		return fmt.Errorf("REPLY_SCHEDULED event for review %s has no scheduled_at", event.ReviewID)
	}

	job := &entity.DispatchJob{
		ID:          uuid.New(),
		ReviewID:    event.ReviewID,
		Platform:    event.Platform,
		ReplyText:   event.Reply,
		ScheduledAt: *event.ScheduledAt,
		Status:      entity.JobStatusPending,
	}

	if err := s.jobRepo.Upsert(ctx, job); err != nil {
		return fmt.Errorf("failed to upsert dispatch job: %w", err)
	}

	logger.Info().
		Str("review_id", event.ReviewID).
		Time("scheduled_at", *event.ScheduledAt).
		Msg("Dispatch job scheduled")

	return nil
}

// handleReplyPublished отменяет отложенную публикацию.
// Ручная публикация имеет приоритет
func (s *DispatchService) handleReplyPublished(ctx context.Context, event *entity.ReviewEvent) error {
	if err := s.jobRepo.CancelPending(ctx, event.ReviewID); err != nil {
		return fmt.Errorf("failed to cancel dispatch job: %w", err)
	}

	logger.Info().
		Str("review_id", event.ReviewID).
		Msg("Pending dispatch job cancelled after manual publish")

	return nil
}

// handleReviewIngested отправляет e-mail уведомление о негативном отзыве
func (s *DispatchService) handleReviewIngested(event *entity.ReviewEvent) error {
	if event.Sentiment != entity.SentimentNegative {
		return nil
	}

	if err := s.mailer.SendNegativeReviewAlert(event); err != nil {
		metrics.WorkerAlertsSent.WithLabelValues("failed").Inc()
		// Почтовый сбой не должен блокировать обработку топика
		logger.Error().
			Err(err).
			Str("review_id", event.ReviewID).
			Msg("Failed to send negative review alert")
		return nil
	}

	metrics.WorkerAlertsSent.WithLabelValues("success").Inc()
	logger.Info().
		Str("review_id", event.ReviewID).
		Str("customer", event.Customer).
		Msg("Negative review alert sent")

	return nil
}

// DispatchDue исполняет все pending задания, время которых наступило.
// Вызывается cron-диспетчером раз в минуту
func (s *DispatchService) DispatchDue(ctx context.Context) error {
	jobs, err := s.jobRepo.GetDue(ctx, s.clock.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to load due dispatch jobs: %w", err)
	}

	for i := range jobs {
		s.dispatchJob(ctx, &jobs[i])
	}

	return nil
}

// dispatchJob доставляет один ответ через Reviews Service
func (s *DispatchService) dispatchJob(ctx context.Context, job *entity.DispatchJob) {
	start := time.Now()

	if err := s.reviews.CompleteScheduled(ctx, job.ReviewID); err != nil {
		attempts := job.Attempts + 1
		final := attempts >= entity.MaxDispatchAttempts

		if repoErr := s.jobRepo.RecordFailure(ctx, job.ReviewID, attempts, err.Error(), final); repoErr != nil {
			logger.Error().
				Err(repoErr).
				Str("review_id", job.ReviewID).
				Msg("Failed to record dispatch failure")
			return
		}

		if final {
			metrics.WorkerDispatchProcessed.WithLabelValues("failed").Inc()
			logger.Error().
				Err(err).
				Str("review_id", job.ReviewID).
				Int("attempts", attempts).
				Msg("Dispatch job failed permanently")
		} else {
			logger.Warn().
				Err(err).
				Str("review_id", job.ReviewID).
				Int("attempts", attempts).
				Msg("Dispatch attempt failed, will retry")
		}
		return
	}

	if err := s.jobRepo.MarkSent(ctx, job.ReviewID); err != nil {
		logger.Error().
			Err(err).
			Str("review_id", job.ReviewID).
			Msg("Reply delivered but failed to mark job sent")
		return
	}

	metrics.WorkerDispatchProcessed.WithLabelValues("sent").Inc()
	metrics.WorkerDispatchDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Str("review_id", job.ReviewID).
		Str("platform", job.Platform).
		Msg("Scheduled reply dispatched")
}
