package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"
	"bistrobot/reviews-service/internal/app/reviews/entity"
	"bistrobot/reviews-service/internal/app/reviews/infrastructure"
	"bistrobot/reviews-service/internal/app/reviews/repository"
	"bistrobot/reviews-service/internal/app/reviews/workflow"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrReviewNotFound         = errors.New("review not found")
	ErrGuidelinesUnavailable  = errors.New("brand guidelines unavailable")
	ErrInvalidScheduledFormat = errors.New("scheduled time must be RFC3339")
)

// ReviewService обрабатывает бизнес-логику жизненного цикла ответов.
// Каждый переход применяется к копии отзыва и коммитится в память
// вызывающего только после успешного сохранения в MongoDB:
// при ошибке персистентности локальное состояние не расходится с удалённым
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	kafkaProducer infrastructure.MessagePublisher
	guidelines    GuidelinesProvider
	summaryCache  SummaryCache
	engine        *workflow.Engine
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	kafkaProducer infrastructure.MessagePublisher,
	guidelines GuidelinesProvider,
	summaryCache SummaryCache,
	engine *workflow.Engine,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		kafkaProducer: kafkaProducer,
		guidelines:    guidelines,
		summaryCache:  summaryCache,
		engine:        engine,
	}
}

// IngestReview создает отзыв, полученный с внешней платформы,
// в статусе Pending Reply с первой записью аудита
func (s *ReviewService) IngestReview(ctx context.Context, req *entity.IngestReviewRequest) (*entity.Review, error) {
	review := &entity.Review{
		Platform:  req.Platform,
		Customer:  req.Customer,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Sentiment: entity.Sentiment(req.Sentiment),
		Date:      req.Date,
	}
	s.engine.Ingest(review)

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to ingest review: %w", err)
	}

	metrics.ReviewsIngested.WithLabelValues(review.Platform, string(review.Sentiment)).Inc()

	// Сводка аналитики устарела
	if err := s.summaryCache.InvalidateSummary(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}

	event := entity.ReviewEvent{
		EventType: entity.EventReviewIngested,
		ReviewID:  review.ID.Hex(),
		Platform:  review.Platform,
		Customer:  review.Customer,
		Rating:    review.Rating,
		Sentiment: string(review.Sentiment),
		Timestamp: time.Now(),
	}
	s.publishEvent(ctx, event)

	return review, nil
}

// ListReviews получает все отзывы для дашборда
func (s *ReviewService) ListReviews(ctx context.Context) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetReview получает отзыв по ID с аудитом, отсортированным по времени
func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.History = s.engine.RenderHistory(review)

	return review, nil
}

// GetHistory получает аудит отзыва, отсортированный по времени
func (s *ReviewService) GetHistory(ctx context.Context, reviewID string) ([]entity.HistoryEntry, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return s.engine.RenderHistory(review), nil
}

// GenerateReply генерирует черновик ответа по настройкам бренда.
// При недоступности настроек отзыв не изменяется
func (s *ReviewService) GenerateReply(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	guidelines, err := s.guidelines.GetGuidelines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGuidelinesUnavailable, err)
	}

	updated := review.Clone()
	s.engine.GenerateDraft(updated, *guidelines)

	if err := s.reviewRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}

	metrics.RepliesDrafted.WithLabelValues("ai").Inc()

	return updated, nil
}

// SaveDraft сохраняет отредактированный пользователем черновик
func (s *ReviewService) SaveDraft(ctx context.Context, reviewID string, text string) (*entity.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated := review.Clone()
	if err := s.engine.SaveDraft(updated, text); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}

	metrics.RepliesDrafted.WithLabelValues("user").Inc()

	return updated, nil
}

// PublishReply публикует ответ. Отправка на платформу делегируется
// интеграциям через событие REPLY_PUBLISHED
func (s *ReviewService) PublishReply(ctx context.Context, reviewID string, text string) (*entity.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated := review.Clone()
	if err := s.engine.Publish(updated, text); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist reply: %w", err)
	}

	metrics.RepliesPublished.WithLabelValues("manual").Inc()

	s.publishEvent(ctx, s.replyEvent(entity.EventReplyPublished, updated))

	return updated, nil
}

// ScheduleReply откладывает публикацию ответа.
// Worker Service подписан на REPLY_SCHEDULED и доставит ответ в срок
func (s *ReviewService) ScheduleReply(ctx context.Context, reviewID string, text string, scheduledAt string) (*entity.Review, error) {
	when, err := time.Parse(time.RFC3339, scheduledAt)
	if err != nil {
		return nil, ErrInvalidScheduledFormat
	}

	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated := review.Clone()
	if err := s.engine.Schedule(updated, text, when); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}

	metrics.RepliesScheduled.Inc()

	s.publishEvent(ctx, s.replyEvent(entity.EventReplyScheduled, updated))

	return updated, nil
}

// CompleteScheduled вызывается Worker Service, когда наступает время
// отложенной публикации: Scheduled -> Replied
func (s *ReviewService) CompleteScheduled(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated := review.Clone()
	if err := s.engine.CompleteScheduled(updated); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist reply: %w", err)
	}

	metrics.RepliesPublished.WithLabelValues("scheduled").Inc()

	s.publishEvent(ctx, s.replyEvent(entity.EventReplyPublished, updated))

	return updated, nil
}

func (s *ReviewService) getReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (s *ReviewService) replyEvent(eventType string, review *entity.Review) entity.ReviewEvent {
	event := entity.ReviewEvent{
		EventType:   eventType,
		ReviewID:    review.ID.Hex(),
		Platform:    review.Platform,
		Customer:    review.Customer,
		Rating:      review.Rating,
		Sentiment:   string(review.Sentiment),
		ScheduledAt: review.ScheduledAt,
		Timestamp:   time.Now(),
	}
	if review.Reply != nil {
		event.Reply = *review.Reply
	}

	return event
}

// publishEvent отправляет событие в Kafka.
// Ошибки Kafka не критичны: переход уже сохранён в MongoDB
func (s *ReviewService) publishEvent(ctx context.Context, event entity.ReviewEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal review event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to publish review event")
	}
}
